// Package config loads the signing run's settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/log"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"

	"github.com/base-org/linksigner/digest"
	"github.com/base-org/linksigner/signer"
)

// DefaultEnvFile is read when present and no other file is named.
const DefaultEnvFile = ".env"

// ErrInvalidConfig is returned when required settings are missing or malformed.
var ErrInvalidConfig = errors.New("invalid configuration")

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

type Config struct {
	PrivateKeyHex    string `env:"PRIVATE_KEY_HEX" validate:"required_without=Mnemonic,excluded_with=Mnemonic"`
	Mnemonic         string `env:"MNEMONIC"`
	HDPath           string `env:"HD_PATH" envDefault:"m/44'/60'/0'/0/0"`
	TargetAddressHex string `env:"TARGET_ADDRESS_HEX" validate:"required"`
	DigestStrategy   string `env:"DIGEST_STRATEGY" validate:"required"`
	OutputFormat     string `env:"OUTPUT_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error crit"`
}

// Load reads envFile (or DefaultEnvFile when empty and present) and the
// process environment. Process variables win over file entries.
func Load(envFile string) (*Config, error) {
	environ := map[string]string{}

	name := envFile
	if name == "" {
		name = DefaultEnvFile
	}
	fileVars, err := godotenv.Read(name)
	switch {
	case err == nil:
		environ = fileVars
	case envFile == "" && errors.Is(err, os.ErrNotExist):
	default:
		return nil, errors.Wrapf(err, "error reading env file %s", name)
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return LoadFrom(environ)
}

// LoadFrom parses settings from the given variables only.
func LoadFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	cfg.HDPath = strings.TrimSpace(cfg.HDPath)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	return &cfg, nil
}

// Validate checks required settings and that exactly one key source is set.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
			}
			return errors.Wrapf(ErrInvalidConfig, "invalid fields: %s", strings.Join(fields, ", "))
		}
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := c.Strategy(); err != nil {
		return err
	}
	return nil
}

// Strategy parses DigestStrategy.
func (c *Config) Strategy() (digest.Strategy, error) {
	return digest.ParseStrategy(c.DigestStrategy)
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	if lvl, ok := levels[c.LogLevel]; ok {
		return lvl
	}
	return log.LevelInfo
}

// Signer builds the signer for the configured key source.
func (c *Config) Signer() (signer.Signer, error) {
	return signer.CreateSigner(c.PrivateKeyHex, c.Mnemonic, c.HDPath)
}
