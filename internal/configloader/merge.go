package configloader

import "github.com/yaklabco/tmplpatch/pkg/config"

// merge layers override on top of base and returns a new config.
// Set fields of override win: non-empty strings, non-zero numbers and
// non-nil pointers. Neither argument is modified.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	result := base.Clone()
	if override == nil {
		return result
	}

	if override.Placeholders.Suffix != nil {
		result.Placeholders.Suffix = config.Ptr(*override.Placeholders.Suffix)
	}
	if override.Directives.Marker != "" {
		result.Directives.Marker = override.Directives.Marker
	}
	if override.Sample.Lookup != "" {
		result.Sample.Lookup = override.Sample.Lookup
	}
	if override.Sample.Seed != nil {
		result.Sample.Seed = config.Ptr(*override.Sample.Seed)
	}
	if override.Preview.Minify != nil {
		result.Preview.Minify = config.Ptr(*override.Preview.Minify)
	}
	if override.Index.MaxBuf != 0 {
		result.Index.MaxBuf = override.Index.MaxBuf
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Ptr(*override.Backups.Enabled)
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	result := configs[0].Clone()
	for _, c := range configs[1:] {
		result = merge(result, c)
	}
	return result
}
