package service

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config carries the HTTP service settings.
type Config struct {
	ListenAddr string `mapstructure:"listen_address"`
	Passphrase string `mapstructure:"passphrase"`
	KeyFile    string `mapstructure:"key_file"`
	LogLevel   string `mapstructure:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":7781",
		LogLevel:   "info",
	}
}

// LoadConfig loads configuration from file and environment, in that order of
// precedence. The config file (arxcrypt.yaml) is optional.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("arxcrypt")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/arxcrypt/")
	viper.AddConfigPath("$HOME/.arxcrypt")
	viper.SetEnvPrefix("ARXCRYPT")
	viper.AutomaticEnv()

	// Defaults register every key with viper; without them AutomaticEnv
	// lookups are invisible to Unmarshal when no config file sets the key.
	viper.SetDefault("listen_address", cfg.ListenAddr)
	viper.SetDefault("passphrase", cfg.Passphrase)
	viper.SetDefault("key_file", cfg.KeyFile)
	viper.SetDefault("log_level", cfg.LogLevel)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found; defaults and environment still apply.
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Key resolves the cipher key bytes: an inline passphrase wins, then the
// key file. An empty key is allowed — the cipher accepts it — but almost
// always a mistake, so callers should warn.
func (c *Config) Key() ([]byte, error) {
	if c.Passphrase != "" {
		return []byte(c.Passphrase), nil
	}
	if c.KeyFile != "" {
		key, err := os.ReadFile(c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("service: failed to read key file %s: %w", c.KeyFile, err)
		}
		return key, nil
	}
	return nil, nil
}
