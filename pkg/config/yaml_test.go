package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tmplpatch/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.DefaultSuffix, cfg.Suffix())
	assert.Equal(t, config.DefaultMarker, cfg.Directives.Marker)
	assert.Equal(t, config.LookupTable, cfg.Sample.Lookup)
	assert.Equal(t, uint64(0), cfg.Seed())
	assert.False(t, cfg.Minify())
	assert.True(t, cfg.BackupsEnabled())
	assert.Equal(t, config.BackupModeSidecar, cfg.Backups.Mode)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestConfig_Accessors(t *testing.T) {
	var cfg config.Config
	assert.Equal(t, config.DefaultSuffix, cfg.Suffix(), "unset suffix uses default")
	assert.True(t, cfg.BackupsEnabled(), "unset backups are enabled")

	cfg.Placeholders.Suffix = config.Ptr("")
	assert.Equal(t, "", cfg.Suffix(), "explicit empty suffix is kept")

	cfg.Backups.Mode = config.BackupModeNone
	assert.False(t, cfg.BackupsEnabled())
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("pointers are copied", func(t *testing.T) {
		original := config.NewConfig()
		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.NotSame(t, original.Backups.Enabled, clone.Backups.Enabled)

		*clone.Backups.Enabled = false
		*clone.Placeholders.Suffix = "!"
		assert.True(t, *original.Backups.Enabled)
		assert.Equal(t, config.DefaultSuffix, *original.Placeholders.Suffix)
	})
}

func TestFromYAML(t *testing.T) {
	input := `
placeholders:
  suffix: "??"
directives:
  marker: "@"
sample:
  lookup: faker
  seed: 42
preview:
  minify: true
index:
  max_buf: 65536
backups:
  enabled: false
log_level: debug
`
	cfg, err := config.FromYAML([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, "??", cfg.Suffix())
	assert.Equal(t, "@", cfg.Directives.Marker)
	assert.Equal(t, config.LookupFaker, cfg.Sample.Lookup)
	assert.Equal(t, uint64(42), cfg.Seed())
	assert.True(t, cfg.Minify())
	assert.Equal(t, 65536, cfg.Index.MaxBuf)
	assert.False(t, cfg.BackupsEnabled())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromYAML_LeavesUnsetFieldsNil(t *testing.T) {
	cfg, err := config.FromYAML([]byte("log_level: warn\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Placeholders.Suffix)
	assert.Nil(t, cfg.Backups.Enabled)
	assert.Empty(t, cfg.Directives.Marker)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("sample: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestToYAML_RoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Sample.Lookup = config.LookupFaker
	original.Sample.Seed = config.Ptr(uint64(7))

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestToYAMLWithHeader(t *testing.T) {
	out, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# header\n\n"))

	var nilCfg *config.Config
	out, err = nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGenerateTemplate(t *testing.T) {
	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(minimal), "# tmplpatch configuration")

	// The minimal template is all comments and parses to an empty config.
	cfg, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)
	cfg, err = config.FromYAML(full)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)
}
