// Package config defines the configuration types for tmplpatch.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

// SampleLookup names the source of sample placeholder values.
type SampleLookup string

const (
	// LookupTable uses the fixed table of values keyed by field name.
	LookupTable SampleLookup = "table"
	// LookupFaker generates realistic values from a seed.
	LookupFaker SampleLookup = "faker"
)

// IsValid returns true if the lookup is known.
func (l SampleLookup) IsValid() bool {
	switch l {
	case LookupTable, LookupFaker:
		return true
	default:
		return false
	}
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// PlaceholderConfig controls placeholder recognition.
type PlaceholderConfig struct {
	// Suffix is stripped from the end of ${...} expressions before lookup.
	// An explicit empty string disables stripping.
	Suffix *string `yaml:"suffix,omitempty"`
}

// DirectiveConfig controls directive stripping.
type DirectiveConfig struct {
	// Marker introduces directive tags, as in <#if>.
	Marker string `yaml:"marker,omitempty"`
}

// SampleConfig controls sample data generation.
type SampleConfig struct {
	Lookup SampleLookup `yaml:"lookup,omitempty"`
	Seed   *uint64      `yaml:"seed,omitempty"`
}

// PreviewConfig controls preview rendering.
type PreviewConfig struct {
	Minify *bool `yaml:"minify,omitempty"`
}

// IndexConfig bounds the element indexer.
type IndexConfig struct {
	// MaxBuf caps the size of a single token in bytes. 0 means unlimited.
	MaxBuf int `yaml:"max_buf,omitempty"`
}

// BackupsConfig controls backups made by apply --write.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure.
type Config struct {
	Placeholders PlaceholderConfig `yaml:"placeholders,omitempty"`
	Directives   DirectiveConfig   `yaml:"directives,omitempty"`
	Sample       SampleConfig      `yaml:"sample,omitempty"`
	Preview      PreviewConfig     `yaml:"preview,omitempty"`
	Index        IndexConfig       `yaml:"index,omitempty"`
	Backups      BackupsConfig     `yaml:"backups,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Defaults.
const (
	DefaultSuffix   = "?has_content"
	DefaultMarker   = "#"
	DefaultLogLevel = "info"
)

// NewConfig returns a Config with every field set to its default.
func NewConfig() *Config {
	return &Config{
		Placeholders: PlaceholderConfig{Suffix: Ptr(DefaultSuffix)},
		Directives:   DirectiveConfig{Marker: DefaultMarker},
		Sample:       SampleConfig{Lookup: LookupTable, Seed: Ptr(uint64(0))},
		Preview:      PreviewConfig{Minify: Ptr(false)},
		Index:        IndexConfig{MaxBuf: 0},
		Backups:      BackupsConfig{Enabled: Ptr(true), Mode: BackupModeSidecar},
		LogLevel:     DefaultLogLevel,
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Suffix returns the effective placeholder suffix.
func (c *Config) Suffix() string {
	return Deref(c.Placeholders.Suffix, DefaultSuffix)
}

// Minify reports whether previews are minified.
func (c *Config) Minify() bool {
	return Deref(c.Preview.Minify, false)
}

// BackupsEnabled reports whether apply --write keeps a backup.
func (c *Config) BackupsEnabled() bool {
	return Deref(c.Backups.Enabled, true) && c.Backups.Mode != BackupModeNone
}

// Seed returns the faker seed.
func (c *Config) Seed() uint64 {
	return Deref(c.Sample.Seed, 0)
}
