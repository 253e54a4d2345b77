// Package config loads the application settings from an optional config
// file, the environment and a .env file, in increasing order of precedence
// for the latter two.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "AFVALWIJZER"

// DefaultAzureScope is the scope of access tokens for Azure Database for
// PostgreSQL.
const DefaultAzureScope = "https://ossrdbms-aad.database.windows.net/.default"

type Config struct {
	LogLevel    string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	Author      string        `mapstructure:"author" validate:"required"`
	Department  string        `mapstructure:"department"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" validate:"gt=0"`
	AzureScope  string        `mapstructure:"azure_scope" validate:"required,url"`
	S3Region    string        `mapstructure:"s3_region"`
	Server      ServerConfig  `mapstructure:"server"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
}

var defaults = map[string]any{
	"log_level":               "info",
	"author":                  "Gemeente Amsterdam",
	"department":              "Waste & Resources",
	"http_timeout":            "60s",
	"azure_scope":             DefaultAzureScope,
	"s3_region":               "eu-west-1",
	"server.host":             "localhost",
	"server.port":             "8080",
	"server.shutdown_timeout": "10s",
	"server.max_body_bytes":   64 << 20,
}

var validate = validator.New()

// Load reads the settings. path may be empty; a .env file in the working
// directory is used when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the server address also honours the plain variables of older .env files
	_ = v.BindEnv("server.host", EnvPrefix+"_SERVER_HOST", "SERVER_HOST")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "SERVER_PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Level returns the zerolog level of LogLevel.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
