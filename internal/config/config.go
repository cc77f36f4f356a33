package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Session SessionConfig `mapstructure:"session"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

type StoreConfig struct {
	URL string `mapstructure:"url"`
}

type SessionConfig struct {
	File string `mapstructure:"file"`
}

type AuthConfig struct {
	// Hasher selects the password verifier: "plain" for wire parity with
	// the original store, "bcrypt" for hashed credentials.
	Hasher string `mapstructure:"hasher"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
	Seed string `mapstructure:"seed"`
}

// Load reads configuration from an optional config.yaml and environment
// variables with the STOREFRONT_ prefix. A missing config file falls back
// to defaults; an unreadable one is an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.storefront/")

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.url", "http://localhost:3130")
	v.SetDefault("session.file", defaultSessionFile())
	v.SetDefault("auth.hasher", "plain")
	v.SetDefault("serve.addr", ":3130")
	v.SetDefault("serve.seed", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront-session.json"
	}
	return filepath.Join(home, ".storefront", "session.json")
}
