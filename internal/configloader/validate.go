package configloader

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/tmplpatch/pkg/config"
)

// ValidationError is a single configuration problem.
type ValidationError struct {
	// Field is the path to the invalid field, e.g. "sample.lookup".
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the error, if known.
	FilePath string

	// Line is the line number in the config file, if known.
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.Sample.Lookup != "" && !cfg.Sample.Lookup.IsValid() {
		fail("sample.lookup", cfg.Sample.Lookup,
			"invalid lookup %q; must be one of: table, faker", cfg.Sample.Lookup)
	}

	if cfg.Directives.Marker != "" && utf8.RuneCountInString(cfg.Directives.Marker) != 1 {
		fail("directives.marker", cfg.Directives.Marker,
			"marker %q must be a single character", cfg.Directives.Marker)
	}

	if cfg.Index.MaxBuf < 0 {
		fail("index.max_buf", cfg.Index.MaxBuf, "max_buf must be >= 0 (0 means unlimited)")
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		fail("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		fail("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	if cfg.Sample.Seed != nil && *cfg.Sample.Seed != 0 && cfg.Sample.Lookup == config.LookupTable {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "sample.seed",
			Value:   *cfg.Sample.Seed,
			Message: "seed has no effect with the table lookup",
		})
	}

	return result
}

// ValidateWithFile validates cfg and attaches filePath to every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
