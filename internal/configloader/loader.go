// Package configloader resolves the tmplpatch configuration: XDG-style
// discovery, layered merging, environment overrides and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/tmplpatch/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to
	// the current directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config. It is loaded
	// after the discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values from command-line flags. It has the highest
	// precedence; unset fields do not override.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	// Paths are the discovered configuration files.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were read, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal problems such as unknown keys.
	Warnings []string
}

// Load resolves the configuration. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (TMPLPATCH_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.tmplpatch.yml, searched upward)
//  5. User config ($XDG_CONFIG_HOME/tmplpatch/config.yaml)
//  6. System config (/etc/tmplpatch/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		ignored bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.ignored || layer.path == "" {
			continue
		}
		fileCfg, warnings, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile reads a YAML config file. Unknown top-level keys are
// reported as warnings.
func loadConfigFile(path string) (*config.Config, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, key := range unknownKeys(content) {
		warnings = append(warnings, fmt.Sprintf("%s: unknown key %q is ignored", path, key))
	}
	return cfg, warnings, nil
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = []string{
	"placeholders", "directives", "sample", "preview", "index", "backups", "log_level",
}

func unknownKeys(content []byte) []string {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil
	}
	var unknown []string
	for key := range raw {
		if !slices.Contains(knownKeys, key) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}
