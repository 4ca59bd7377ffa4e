package config

// OutputFormat selects how structured command output is printed.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat returns the format named s, or FormatTable when s is
// empty. The boolean is false for unknown names.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	if s == "" {
		return FormatTable, true
	}
	f := OutputFormat(s)
	return f, f.IsValid()
}

// IsStructured reports whether the format is machine-readable.
func (f OutputFormat) IsStructured() bool {
	return f == FormatJSON || f == FormatYAML
}
