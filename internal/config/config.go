// Package config loads the settings of the richtext command.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the richtext command.
type Config struct {
	// Format is how input is interpreted: auto, html, text or markdown.
	Format string `yaml:"format" validate:"oneof=auto html text markdown"`

	// Engine is the sanitizer engine: tree or bluemonday.
	Engine string `yaml:"engine" validate:"oneof=tree bluemonday"`

	// MaxInputBytes bounds the size of a single input.
	MaxInputBytes int `yaml:"max_input_bytes" validate:"gt=0"`

	// LogLevel is the minimum slog level: debug, info, warn or error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// FromEnv returns the configuration described by the environment,
// with defaults for unset or malformed variables.
func FromEnv() *Config {
	return &Config{
		Format:        getEnvStr(EnvFormat, DefaultFormat),
		Engine:        getEnvStr(EnvEngine, DefaultEngine),
		MaxInputBytes: getEnvNum(EnvMaxInputBytes, DefaultMaxInputBytes),
		LogLevel:      getEnvStr(EnvLogLevel, DefaultLogLevel),
	}
}

// Load returns the configuration from the environment, overridden by
// the YAML file at path when path is not empty, and validated.
func Load(path string) (*Config, error) {
	cfg := FromEnv()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv adds the variables in the dotenv file at path to the
// environment. Variables already set are left alone.
func LoadDotEnv(path string) error {
	return godotenv.Load(path)
}

// Validate reports whether every field of c holds an accepted value.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// Level returns the slog level named by c.LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
