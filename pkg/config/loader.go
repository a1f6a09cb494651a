package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/scribe/pkg/errors"
	"github.com/arthur-debert/scribe/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appDir     = "scribe"
	fileName   = "config.toml"
	envPrefix  = "SCRIBE_"
	keyDelimit = "."
)

// Options select the layers above the embedded defaults
type Options struct {
	// Path is an explicit config file. It must exist. When empty the
	// user file is used if there is one.
	Path string
	// Overrides are applied last, keyed by dotted path ("render.width")
	Overrides map[string]interface{}
}

// UserPath is where the user config file is looked up
func UserPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, appDir, fileName)
}

// Load merges all configuration layers into a validated Config
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(keyDelimit)

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User or explicit config file
	path, err := configPath(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	err = k.Load(env.Provider(envPrefix, keyDelimit, func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", keyDelimit)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Caller overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, keyDelimit), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("width", cfg.Render.Width).
		Str("format", cfg.Render.Format).
		Strs("definitions", cfg.Definitions).
		Msg("Configuration loaded")
	return cfg, nil
}

// configPath resolves the file layer. An explicit path must exist, a
// missing user file is skipped.
func configPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}
	path := UserPath()
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
