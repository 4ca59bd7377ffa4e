package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/tmplpatch/pkg/config"
)

// envVarPrefix is the prefix of every tmplpatch environment variable.
const envVarPrefix = "TMPLPATCH_"

// envSetter parses an environment value into cfg.
type envSetter func(cfg *config.Config, value string) error

type envVar struct {
	field       string
	description string
	set         envSetter
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"PLACEHOLDER_SUFFIX": {
		field:       "placeholders.suffix",
		description: "Suffix stripped from ${...} expressions",
		set: func(cfg *config.Config, v string) error {
			cfg.Placeholders.Suffix = config.Ptr(v)
			return nil
		},
	},
	"DIRECTIVE_MARKER": {
		field:       "directives.marker",
		description: "Character introducing directive tags",
		set: func(cfg *config.Config, v string) error {
			cfg.Directives.Marker = v
			return nil
		},
	},
	"SAMPLE_LOOKUP": {
		field:       "sample.lookup",
		description: "Sample values: table or faker",
		set: func(cfg *config.Config, v string) error {
			cfg.Sample.Lookup = config.SampleLookup(v)
			return nil
		},
	},
	"SAMPLE_SEED": {
		field:       "sample.seed",
		description: "Seed for faker sample values",
		set: func(cfg *config.Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unsigned integer %q", v)
			}
			cfg.Sample.Seed = config.Ptr(n)
			return nil
		},
	},
	"PREVIEW_MINIFY": {
		field:       "preview.minify",
		description: "Minify previews: true or false",
		set:         boolSetter(func(cfg *config.Config, b bool) { cfg.Preview.Minify = config.Ptr(b) }),
	},
	"INDEX_MAX_BUF": {
		field:       "index.max_buf",
		description: "Largest token accepted by the indexer in bytes",
		set: func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			cfg.Index.MaxBuf = n
			return nil
		},
	},
	"BACKUPS_ENABLED": {
		field:       "backups.enabled",
		description: "Keep backups on apply --write: true or false",
		set:         boolSetter(func(cfg *config.Config, b bool) { cfg.Backups.Enabled = config.Ptr(b) }),
	},
	"BACKUPS_MODE": {
		field:       "backups.mode",
		description: "Backup mode: sidecar or none",
		set: func(cfg *config.Config, v string) error {
			cfg.Backups.Mode = v
			return nil
		},
	},
	"LOG_LEVEL": {
		field:       "log_level",
		description: "Log level: debug, info, warn or error",
		set: func(cfg *config.Config, v string) error {
			cfg.LogLevel = v
			return nil
		},
	},
}

func boolSetter(apply func(*config.Config, bool)) envSetter {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		apply(cfg, b)
		return nil
	}
}

// LoadFromEnv applies TMPLPATCH_* environment variables to cfg. Empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, suffix := range envSuffixes() {
		name := envVarPrefix + suffix
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			continue
		}
		if err := envVars[suffix].set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func envSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for s := range envVars {
		suffixes = append(suffixes, s)
	}
	sort.Strings(suffixes)
	return suffixes
}

// GetEnvVarName returns the environment variable for a config field, or ""
// if the field has none.
func GetEnvVarName(field string) string {
	for suffix, v := range envVars {
		if v.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with a short
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		out[envVarPrefix+suffix] = v.description
	}
	return out
}
