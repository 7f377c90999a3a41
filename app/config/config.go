// Package config loads the server configuration from built-in defaults, an
// optional YAML file and BOARD_* environment variables, in that order.
package config

import (
	"os"
	"strings"
	"time"

	apperrors "bulletin/app/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks the environment variables that override the file.
	EnvPrefix = "BOARD_"
	// DefaultFile is read when no path is given and it exists.
	DefaultFile = "config.yaml"
)

type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Storage Storage `koanf:"storage"`
	Auth    Auth    `koanf:"auth"`
	Log     Log     `koanf:"log"`
}

type HTTP struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
	// MaxBodyBytes caps request bodies. 0 disables the cap.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"min=0"`
}

type Storage struct {
	Path     string `koanf:"path" validate:"required_without=InMemory"`
	InMemory bool   `koanf:"in_memory"`
}

type Auth struct {
	BcryptCost int `koanf:"bcrypt_cost" validate:"min=4,max=31"`
}

type Log struct {
	Level       string `koanf:"level" validate:"oneof=debug info warn error"`
	Development bool   `koanf:"development"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		HTTP: HTTP{
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Storage: Storage{
			Path: "data/board.db",
		},
		Auth: Auth{
			BcryptCost: 10,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load builds the configuration. An explicit path must exist; with an empty
// path DefaultFile is used if present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, apperrors.Wrapf(err, "read config %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: EnvKey,
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, "load env variables")
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, apperrors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnvKey maps BOARD_<SECTION>_<KEY> to <section>.<key>. Only the first
// underscore after the prefix separates the section, so BOARD_AUTH_BCRYPT_COST
// becomes auth.bcrypt_cost. Variables without a section are dropped.
func EnvKey(k, v string) (string, any) {
	k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	section, key, ok := strings.Cut(k, "_")
	if !ok || section == "" || key == "" {
		return "", nil
	}
	return section + "." + key, v
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if apperrors.As(err, &verrs) && len(verrs) > 0 {
			return apperrors.Errorf("invalid config: %s fails %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return apperrors.Wrap(err, "invalid config")
	}
	return nil
}
