package config

import "fmt"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of a
	// commented skeleton.
	Full bool
}

// DefaultTemplateHeader returns the header written above generated configs.
func DefaultTemplateHeader() string {
	return `# tmplpatch configuration
# See: https://github.com/yaklabco/tmplpatch`
}

// GenerateTemplate creates the contents of a new .tmplpatch.yml.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		out, err := NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return out, nil
	}

	return []byte(DefaultTemplateHeader() + `

# Suffix stripped from ${...} expressions before lookup.
# placeholders:
#   suffix: "?has_content"

# Character introducing directive tags such as <#if> and </#list>.
# directives:
#   marker: "#"

# Sample values: "table" (fixed values) or "faker" (seeded random values).
# sample:
#   lookup: table
#   seed: 0

# Minify generated previews.
# preview:
#   minify: false

# Largest single token accepted by the indexer in bytes (0 = unlimited).
# index:
#   max_buf: 0

# Backups written next to files changed by apply --write.
# backups:
#   enabled: true
#   mode: sidecar

# log_level: info
`), nil
}
