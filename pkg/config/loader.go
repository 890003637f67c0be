package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	skerrors "github.com/skilldock/skilldock/pkg/errors"
	"github.com/skilldock/skilldock/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for configuration environment variables.
const EnvPrefix = "SKILLDOCK_"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load builds the configuration in three layers: embedded defaults, the
// user config file (if present) and SKILLDOCK_* environment variables.
func Load(p *paths.Paths) (*Config, error) {
	k := koanf.New(".")

	// 0. Hard fallback so shared_dir is never empty, whatever the layers
	// above end up providing
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"shared_dir": "skilldock/skills",
	}, "."), nil); err != nil {
		return nil, skerrors.Wrap(err, skerrors.ErrConfigLoad, "failed to load built-in defaults")
	}

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{defaultConfig}, toml.Parser()); err != nil {
		return nil, skerrors.Wrap(err, skerrors.ErrConfigParse, "failed to parse embedded defaults")
	}

	// 2. User config file, if it exists
	userConfigPath := p.ConfigFilePath()
	if _, err := os.Stat(userConfigPath); err == nil {
		if err := k.Load(file.Provider(userConfigPath), toml.Parser()); err != nil {
			return nil, skerrors.Wrapf(err, skerrors.ErrConfigParse,
				"failed to load config from %s", userConfigPath)
		}
	}

	// 3. Environment variables: SKILLDOCK_SHARED_DIR overrides shared_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, skerrors.Wrap(err, skerrors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, skerrors.Wrap(err, skerrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// Default returns the embedded default configuration without user or
// environment overrides.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{defaultConfig}, toml.Parser()); err != nil {
		// The embedded defaults are part of the binary; a parse failure
		// here is a programming error.
		panic(err)
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		panic(err)
	}
	return &cfg
}
