// Package config provides a reusable loader for assetprov's configuration
// files and environment variables: a default file, an optional
// environment-specific overlay, then environment variables win.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"assetprov/pkg/utils"
)

// Config is the unified ambient configuration for a host process embedding
// the core library: default method tag, default encoding, default watermark
// channel, and log level. It carries no domain state: the content-
// addressed core itself is pure and unconfigured.
type Config struct {
	DefaultMethod    string `mapstructure:"default_method" json:"default_method"`
	DefaultEncoding  string `mapstructure:"default_encoding" json:"default_encoding"`
	DefaultChannel   string `mapstructure:"default_channel" json:"default_channel"`
	LogLevel         string `mapstructure:"log_level" json:"log_level"`
	RegistryEndpoint string `mapstructure:"registry_endpoint" json:"registry_endpoint"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

func defaults() Config {
	return Config{
		DefaultMethod:   "asset",
		DefaultEncoding: "base58",
		DefaultChannel:  "combined",
		LogLevel:        "info",
	}
}

// Load reads cmd/config/default.(yaml|yml|json) if present, merges an
// optional env-named overlay, applies ASSETPROV_-prefixed environment
// variable overrides, and falls back to hardcoded defaults for anything
// still unset. The result is stored in AppConfig and returned.
func Load(env string) (*Config, error) {
	cfg := defaults()

	_ = godotenv.Load() // best-effort; absence of .env is not an error

	v := viper.New()
	v.SetConfigName("default")
	v.AddConfigPath("cmd/config")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ASSETPROV")
	v.AutomaticEnv()

	v.SetDefault("default_method", cfg.DefaultMethod)
	v.SetDefault("default_encoding", cfg.DefaultEncoding)
	v.SetDefault("default_channel", cfg.DefaultChannel)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("registry_endpoint", cfg.RegistryEndpoint)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, utils.Wrap(err, "load config")
		}
	}

	if env != "" {
		v.SetConfigName(env)
		if err := v.MergeInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
			}
		}
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the ASSETPROV_ENV environment
// variable to select the overlay file.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("ASSETPROV_ENV", ""))
}
