package config

import (
	"time"

	"github.com/arthur-debert/scribe/pkg/buffer"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/formats"
	"github.com/arthur-debert/scribe/pkg/loader"
)

// Config holds the merged settings
type Config struct {
	Render      Render   `koanf:"render"`
	ANSI        ANSI     `koanf:"ansi"`
	Watch       Watch    `koanf:"watch"`
	Definitions []string `koanf:"definitions"`
}

// Render selects the output document
type Render struct {
	Width  int    `koanf:"width"`
	Format string `koanf:"format"`
	Input  string `koanf:"input"`
	DM     bool   `koanf:"dm"`
}

type ANSI struct {
	// Ignore matches escape sequences that take no room on screen
	Ignore string `koanf:"ignore"`
}

type Watch struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Validate checks the values no layer can be trusted with
func (c *Config) Validate() error {
	if c.Render.Width < 1 {
		return errors.Newf(errors.ErrConfigValid, "render.width must be positive, got %d", c.Render.Width).
			WithDetails(map[string]interface{}{"key": "render.width", "value": c.Render.Width})
	}
	if _, err := formats.ParseFormat(c.Render.Format); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid render.format '%s'", c.Render.Format).
			WithDetail("key", "render.format")
	}
	if _, err := loader.ParseInput(c.Render.Input); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid render.input '%s'", c.Render.Input).
			WithDetail("key", "render.input")
	}
	if c.ANSI.Ignore != "" {
		if _, err := buffer.CompileIgnore(c.ANSI.Ignore); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid ansi.ignore pattern").
				WithDetail("key", "ansi.ignore")
		}
	}
	if c.Watch.Debounce < 0 {
		return errors.New(errors.ErrConfigValid, "watch.debounce must not be negative").
			WithDetails(map[string]interface{}{"key": "watch.debounce", "value": c.Watch.Debounce})
	}
	return nil
}

// Settings resolves the document settings. An auto format becomes ANSI
// when the output is a terminal and ASCII otherwise.
func (c *Config) Settings(terminal bool) formats.Settings {
	format, err := formats.ParseFormat(c.Render.Format)
	if err != nil || format == formats.Auto {
		format = formats.ASCII
		if terminal {
			format = formats.ANSI
		}
	}
	return formats.Settings{
		Format: format,
		Width:  c.Render.Width,
		Ignore: c.ANSI.Ignore,
	}
}

// InputFormat returns the configured input syntax, auto when unset
func (c *Config) InputFormat() loader.Input {
	in, err := loader.ParseInput(c.Render.Input)
	if err != nil {
		return loader.Auto
	}
	return in
}
