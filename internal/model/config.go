package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration for the CLI driver.
type Config struct {
	// DatabasePath is the location of the SQLite database file.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// DefaultUser is the acting user id assumed by the CLI when no
	// --user flag is given. The core itself never reads this; identity
	// is always passed explicitly into every operation.
	DefaultUser string `mapstructure:"default_user" yaml:"default_user"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/crm/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "crm", "config.yaml")
}

// DefaultDatabasePath returns the default location of the SQLite database.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "crm.db")
	}
	return filepath.Join(home, ".local", "share", "crm", "crm.db")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	return &Config{
		DatabasePath: DefaultDatabasePath(),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("database_path", DefaultDatabasePath())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database_path", cfg.DatabasePath)
	v.Set("default_user", cfg.DefaultUser)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
