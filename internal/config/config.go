// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Store backend identifiers.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		Backend    string `mapstructure:"backend" yaml:"backend"`
		Directory  string `mapstructure:"directory" yaml:"directory"`
		SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	} `mapstructure:"store" yaml:"store"`

	Reconcile struct {
		Workers  int    `mapstructure:"workers" yaml:"workers"`
		Schedule string `mapstructure:"schedule" yaml:"schedule"`
	} `mapstructure:"reconcile" yaml:"reconcile"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.lifequest")
	v.AddConfigPath(".lifequest")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LIFEQUEST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.backend", BackendYAML)
	v.SetDefault("store.directory", defaultDataDir())
	v.SetDefault("store.sqlite_path", filepath.Join(defaultDataDir(), "finance.db"))

	v.SetDefault("reconcile.workers", 4)
	v.SetDefault("reconcile.schedule", "@hourly")
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(homeDir, ".lifequest", "data")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Store.Backend != BackendYAML && config.Store.Backend != BackendSQLite {
		return fmt.Errorf("invalid store backend: %s (must be '%s' or '%s')",
			config.Store.Backend, BackendYAML, BackendSQLite)
	}

	if config.Reconcile.Workers < 1 || config.Reconcile.Workers > 64 {
		return fmt.Errorf("reconcile.workers must be between 1 and 64, got: %d", config.Reconcile.Workers)
	}

	return nil
}

// LoadEnv loads a .env file from the working directory if present.
func LoadEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// ConfigureLogging configures a logrus logger from the Config struct.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
