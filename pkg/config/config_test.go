package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/formats"
	"github.com/arthur-debert/scribe/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config lookup at an empty directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolate(t)

		cfg, err := Load(Options{})
		require.NoError(t, err)

		assert.Equal(t, 80, cfg.Render.Width)
		assert.Equal(t, "auto", cfg.Render.Format)
		assert.Equal(t, "auto", cfg.Render.Input)
		assert.False(t, cfg.Render.DM)
		assert.Equal(t, formats.DefaultIgnore, cfg.ANSI.Ignore)
		assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
		assert.Empty(t, cfg.Definitions)
	})

	t.Run("user_file", func(t *testing.T) {
		dir := isolate(t)
		data, err := os.ReadFile(filepath.Join("testdata", "config.toml"))
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "scribe"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "scribe", "config.toml"), data, 0644))

		cfg, err := Load(Options{})
		require.NoError(t, err)

		assert.Equal(t, 60, cfg.Render.Width)
		assert.Equal(t, "ascii", cfg.Render.Format)
		assert.Equal(t, "auto", cfg.Render.Input, "keys the file leaves out keep their defaults")
		assert.Equal(t, time.Second, cfg.Watch.Debounce)
		assert.Equal(t, []string{"actions.toml"}, cfg.Definitions)
	})

	t.Run("explicit_file", func(t *testing.T) {
		isolate(t)

		cfg, err := Load(Options{Path: filepath.Join("testdata", "config.toml")})
		require.NoError(t, err)
		assert.Equal(t, 60, cfg.Render.Width)
	})

	t.Run("missing_explicit_file", func(t *testing.T) {
		isolate(t)

		_, err := Load(Options{Path: filepath.Join("testdata", "nope.toml")})
		require.Error(t, err)
		assert.Equal(t, errors.ErrConfigLoad, errors.GetErrorCode(err))
	})

	t.Run("broken_file", func(t *testing.T) {
		isolate(t)

		_, err := Load(Options{Path: filepath.Join("testdata", "broken.toml")})
		require.Error(t, err)
		assert.Equal(t, errors.ErrConfigParse, errors.GetErrorCode(err))
	})

	t.Run("environment", func(t *testing.T) {
		isolate(t)
		t.Setenv("SCRIBE_RENDER_WIDTH", "42")
		t.Setenv("SCRIBE_RENDER_DM", "true")
		t.Setenv("SCRIBE_DEFINITIONS", "a.toml,b.yaml")

		cfg, err := Load(Options{Path: filepath.Join("testdata", "config.toml")})
		require.NoError(t, err)

		assert.Equal(t, 42, cfg.Render.Width, "environment beats the file")
		assert.True(t, cfg.Render.DM)
		assert.Equal(t, []string{"a.toml", "b.yaml"}, cfg.Definitions)
	})

	t.Run("overrides", func(t *testing.T) {
		isolate(t)
		t.Setenv("SCRIBE_RENDER_WIDTH", "42")

		cfg, err := Load(Options{Overrides: map[string]interface{}{
			"render.width":  30,
			"render.format": "plain",
		}})
		require.NoError(t, err)

		assert.Equal(t, 30, cfg.Render.Width, "overrides beat the environment")
		assert.Equal(t, "plain", cfg.Render.Format)
	})

	t.Run("invalid_override", func(t *testing.T) {
		isolate(t)

		_, err := Load(Options{Overrides: map[string]interface{}{"render.format": "html"}})
		require.Error(t, err)
		assert.Equal(t, errors.ErrConfigValid, errors.GetErrorCode(err))
		assert.Equal(t, "render.format", errors.GetErrorDetails(err)["key"])
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Render: Render{Width: 40, Format: "ascii", Input: "auto"},
			ANSI:   ANSI{Ignore: formats.DefaultIgnore},
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		key    string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero_width", func(c *Config) { c.Render.Width = 0 }, "render.width"},
		{"negative_width", func(c *Config) { c.Render.Width = -3 }, "render.width"},
		{"unknown_format", func(c *Config) { c.Render.Format = "pdf" }, "render.format"},
		{"format_case", func(c *Config) { c.Render.Format = "ANSI" }, ""},
		{"unknown_input", func(c *Config) { c.Render.Input = "json" }, "render.input"},
		{"bad_ignore", func(c *Config) { c.ANSI.Ignore = "(" }, "ansi.ignore"},
		{"empty_ignore", func(c *Config) { c.ANSI.Ignore = "" }, ""},
		{"negative_debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.key == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Equal(t, tt.key, errors.GetErrorDetails(err)["key"])
		})
	}

	t.Run("offending_value", func(t *testing.T) {
		cfg := valid()
		cfg.Render.Width = -3
		assert.Equal(t, -3, errors.GetErrorDetails(cfg.Validate())["value"])
	})
}

func TestSettings(t *testing.T) {
	cfg := Config{
		Render: Render{Width: 50, Format: "auto"},
		ANSI:   ANSI{Ignore: "x"},
	}

	assert.Equal(t, formats.Settings{Format: formats.ANSI, Width: 50, Ignore: "x"}, cfg.Settings(true))
	assert.Equal(t, formats.Settings{Format: formats.ASCII, Width: 50, Ignore: "x"}, cfg.Settings(false))

	cfg.Render.Format = "plain"
	assert.Equal(t, formats.Plain, cfg.Settings(true).Format)
}

func TestInputFormat(t *testing.T) {
	assert.Equal(t, loader.Auto, (&Config{}).InputFormat())
	assert.Equal(t, loader.YAML, (&Config{Render: Render{Input: "YAML"}}).InputFormat())
}

func TestDefaults(t *testing.T) {
	assert.Contains(t, Defaults(), "[render]")
}
