package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/tmplpatch/internal/configloader"
	"github.com/yaklabco/tmplpatch/internal/logging"
	"github.com/yaklabco/tmplpatch/internal/ui/pretty"
	"github.com/yaklabco/tmplpatch/pkg/config"
	"github.com/yaklabco/tmplpatch/pkg/directive"
	"github.com/yaklabco/tmplpatch/pkg/document"
	"github.com/yaklabco/tmplpatch/pkg/fsutil"
	"github.com/yaklabco/tmplpatch/pkg/htmlpos"
	"github.com/yaklabco/tmplpatch/pkg/patch"
	"github.com/yaklabco/tmplpatch/pkg/placeholder"
	"github.com/yaklabco/tmplpatch/pkg/preview"
	"github.com/yaklabco/tmplpatch/pkg/sample"
	"github.com/yaklabco/tmplpatch/pkg/sniff"
)

// session is the per-invocation state shared by the subcommands: the
// resolved configuration, a logger and the output streams.
type session struct {
	cmd    *cobra.Command
	cfg    *config.Config
	logger *log.Logger
	color  string
}

// newSession loads the configuration with cliCfg as the highest-precedence
// layer and attaches a logger to the command context.
func newSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	noConfig, _ := cmd.Flags().GetBool("no-config")
	debug, _ := cmd.Flags().GetBool("debug")
	colorMode, _ := cmd.Flags().GetString("color")

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  noConfig,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	level := result.Config.LogLevel
	if debug {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, result.LoadedFrom)
	}

	cmd.SetContext(logging.WithLogger(ctx, logger))

	return &session{
		cmd:    cmd,
		cfg:    result.Config,
		logger: logger,
		color:  colorMode,
	}, nil
}

func (s *session) ctx() context.Context {
	return s.cmd.Context()
}

func (s *session) out() io.Writer {
	return s.cmd.OutOrStdout()
}

func (s *session) styles() *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(s.color, s.out()))
}

func (s *session) tableFormatter() *pretty.TableFormatter {
	colorEnabled := pretty.IsColorEnabled(s.color, s.out())
	return pretty.NewTableFormatter(pretty.NewStyles(colorEnabled), colorEnabled, pretty.TerminalWidth(s.out()))
}

// readInput reads a template from path or stdin and warns when it does not
// look like markup.
func (s *session) readInput(path string) (string, *fsutil.FileInfo, error) {
	content, info, err := fsutil.ReadInput(s.ctx(), path, s.cmd.InOrStdin())
	if err != nil {
		return "", nil, err
	}

	detected := sniff.Detect(path, content)
	if !detected.Markup {
		s.logger.Warn("input does not look like markup; element positions may be meaningless",
			logging.FieldPath, path,
			logging.FieldLanguage, detected.Language,
		)
	}
	s.logger.Debug("read input",
		logging.FieldPath, path,
		logging.FieldBytes, len(content),
		logging.FieldLanguage, detected.Language,
	)
	return string(content), info, nil
}

// loadEdits reads an edit file, or returns an empty set when path is "".
func (s *session) loadEdits(path string) (patch.EditSet, error) {
	if path == "" {
		return patch.NewEditSet(), nil
	}
	edits, err := patch.LoadEditSet(path)
	if err != nil {
		return patch.EditSet{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	s.logger.Debug("loaded edits",
		logging.FieldPath, path,
		logging.FieldRemovals, len(edits.Removals()),
		logging.FieldStyles, len(edits.StyledIDs()),
	)
	return edits, nil
}

func (s *session) lookup() sample.Lookup {
	if s.cfg.Sample.Lookup == config.LookupFaker {
		return sample.NewFaker(s.cfg.Seed())
	}
	return sample.Default()
}

func (s *session) resolver() *placeholder.Resolver {
	return placeholder.NewResolver(placeholder.WithSuffix(s.cfg.Suffix()))
}

func (s *session) stripper() *directive.Stripper {
	return directive.NewStripper(s.cfg.Directives.Marker)
}

func (s *session) indexOptions() htmlpos.Options {
	return htmlpos.Options{MaxBuf: s.cfg.Index.MaxBuf}
}

func (s *session) documentOptions() document.Options {
	return document.Options{
		Lookup:   s.lookup(),
		Resolver: s.resolver(),
		Stripper: s.stripper(),
		Index:    s.indexOptions(),
		Preview:  preview.Options{Minify: s.cfg.Minify()},
	}
}

// snapshot builds the pipeline for source and logs a degraded index.
func (s *session) snapshot(path, source string, edits patch.EditSet) *document.Snapshot {
	snap := document.New(source, edits, s.documentOptions())
	if err := snap.IndexErr(); err != nil {
		s.logger.Warn("could not index input; using raw source",
			logging.FieldPath, path,
			logging.FieldError, err,
		)
	}
	return snap
}

// writeOutput writes content to path atomically, or to stdout when path
// is "" or "-".
func (s *session) writeOutput(path string, content []byte) error {
	if path == "" || path == fsutil.StdinPath {
		_, err := s.out().Write(content)
		return err
	}
	if err := fsutil.WriteAtomic(s.ctx(), path, content, 0); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Info("wrote output", logging.FieldOutput, path, logging.FieldBytes, len(content))
	return nil
}

// printStructured writes v as JSON or YAML.
func printStructured(w io.Writer, format config.OutputFormat, v any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: format %q is not structured", ErrUsage, format)
	}
}

// parseFormat validates a --format flag value.
func parseFormat(s string) (config.OutputFormat, error) {
	format, ok := config.ParseOutputFormat(s)
	if !ok {
		return "", fmt.Errorf("%w: invalid format %q; must be one of: table, json, yaml", ErrUsage, s)
	}
	return format, nil
}

// exactlyOneFile is a cobra.PositionalArgs requiring a single FILE.
func exactlyOneFile(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: %s expects one FILE argument (use - for stdin), got %d",
			ErrUsage, cmd.Name(), len(args))
	}
	return nil
}
