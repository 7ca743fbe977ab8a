package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/decorate"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.True(t, cfg.DetectLanguage())
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Equal(t, config.FormatTable, cfg.Format)
	require.NoError(t, cfg.Validate())

	defaults := decorate.DefaultClasses()
	assert.Equal(t, defaults.Heading, cfg.Classes.Heading)
	assert.Equal(t, defaults.Strong, cfg.Classes.Strong)
	assert.Equal(t, defaults.InlineCode, cfg.Classes.InlineCode)
	assert.Equal(t, defaults.TaskChecked, cfg.Classes.TaskChecked)
	assert.Equal(t, defaults.CodeBlock, cfg.Classes.CodeBlock)
	assert.Equal(t, defaults.Marker, cfg.Classes.Marker)
	assert.Equal(t, defaults.Hidden, cfg.Classes.Hidden)
}

func TestGlyphsConfig_Bullet(t *testing.T) {
	t.Parallel()

	glyphs := config.GlyphsConfig{Bullets: []string{"a", "b"}}

	tests := []struct {
		depth int
		want  string
	}{
		{0, "a"},
		{1, "a"},
		{2, "b"},
		{3, "a"},
		{4, "b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, glyphs.Bullet(tt.depth), "depth %d", tt.depth)
	}

	assert.Empty(t, config.GlyphsConfig{}.Bullet(1))
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	off := false
	var nilCfg *config.Config

	assert.False(t, nilCfg.DetectLanguage())
	assert.False(t, (&config.Config{}).DetectLanguage())
	assert.False(t, (&config.Config{DetectCodeLanguage: &off}).DetectLanguage())
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies glyphs and pointers", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Glyphs.Bullets[0] = "*"
		*clone.DetectCodeLanguage = false
		clone.Classes.Strong = "bold"

		assert.Equal(t, "•", original.Glyphs.Bullets[0])
		assert.True(t, original.DetectLanguage())
		assert.Equal(t, "md-strong", original.Classes.Strong)
	})

	t.Run("keeps CLI-only fields", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{Format: config.FormatJSON}
		assert.Equal(t, config.FormatJSON, original.Clone().Format)
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		mutate  func(*config.Config)
		field   string
		warning bool
	}

	tests := []testCase{
		{"bad flavor", func(c *config.Config) { c.Flavor = "mdx" }, "flavor", false},
		{"bad format", func(c *config.Config) { c.Format = "xml" }, "format", false},
		{"bad color", func(c *config.Config) { c.Color = "sometimes" }, "color", false},
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }, "log_level", false},
		{"blank bullet", func(c *config.Config) { c.Glyphs.Bullets = []string{"•", " "} }, "glyphs.bullets[1]", false},
		{"marker equals hidden", func(c *config.Config) { c.Classes.Hidden = c.Classes.Marker }, "classes.hidden", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			issues := cfg.Check()
			require.Len(t, issues, 1)
			assert.Equal(t, tt.field, issues[0].Field)
			assert.Equal(t, tt.warning, issues[0].Warning)

			if tt.warning {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
			}
		})
	}
}

func TestCheck_EmptyMeansDefault(t *testing.T) {
	t.Parallel()

	assert.Empty(t, (&config.Config{}).Check())
	assert.Empty(t, (*config.Config)(nil).Check())
	assert.True(t, config.IsValidLogLevel("DEBUG"))
}
