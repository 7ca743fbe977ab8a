package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/config"
)

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
flavor: commonmark
detect_code_language: false
classes:
  strong: bold
glyphs:
  bullets: ["-"]
log_level: debug
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	require.NotNil(t, cfg.DetectCodeLanguage)
	assert.False(t, *cfg.DetectCodeLanguage)
	assert.Equal(t, "bold", cfg.Classes.Strong)
	assert.Empty(t, cfg.Classes.Emphasis)
	assert.Equal(t, []string{"-"}, cfg.Glyphs.Bullets)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromYAML_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)
}

func TestFromYAML_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("flavour: gfm\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flavour")
}

func TestFromYAML_JSON(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`{"flavor": "gfm", "glyphs": {"checked": "x"}}`))
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, "x", cfg.Glyphs.Checked)
}

func TestToYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	data, err := original.ToYAML()
	require.NoError(t, err)

	assert.Contains(t, string(data), "flavor: gfm\n")
	assert.Contains(t, string(data), "  strong: md-strong\n")
	assert.NotContains(t, string(data), "format")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	original.Format = ""
	assert.Equal(t, original, parsed)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Flavor: config.FlavorGFM}

	data, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Equal(t, "# header\n\nflavor: gfm\n", string(data))

	data, err = cfg.ToYAMLWithHeader("")
	require.NoError(t, err)
	assert.Equal(t, "flavor: gfm\n", string(data))

	var nilCfg *config.Config
	data, err = nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal yaml parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), config.DefaultTemplateHeader()))

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	})

	t.Run("full yaml carries every default", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "yaml"})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Markdown flavor")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)

		want := config.NewConfig()
		want.Format = ""
		assert.Equal(t, want, cfg)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "json"})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"log_level": "warn"`)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "md-hidden", cfg.Classes.Hidden)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
		require.Error(t, err)
	})
}
