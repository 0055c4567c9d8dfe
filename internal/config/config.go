// Package config handles application configuration using Viper.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	State StateConfig `mapstructure:"state"`
	Log   LogConfig   `mapstructure:"log"`
}

// APIConfig holds settings for the dashboard API client.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Locale  string        `mapstructure:"locale"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StateConfig holds settings for the local session state directory.
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from file and environment.
// Precedence: defaults, then the config file, then WISAL_* environment variables.
// A local .env file is loaded into the environment first when present.
func Load(configPath string) (*Config, error) {
	// .env is optional; ignore when missing
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure paths
	if configPath == "" {
		configPath = os.Getenv("WISAL_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Environment variables: api.base_url becomes WISAL_API_BASE_URL
	v.SetEnvPrefix("WISAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is OK, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand home directory in the state path
	if cfg.State.Dir != "" && cfg.State.Dir[0] == '~' {
		home, _ := os.UserHomeDir()
		cfg.State.Dir = filepath.Join(home, cfg.State.Dir[1:])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("invalid config: api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Locale == "" {
		return fmt.Errorf("invalid config: api.locale must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid config: api.timeout must be positive, got %s", c.API.Timeout)
	}
	return nil
}

// StateFile returns the path of the persisted session file.
func (c *Config) StateFile() string {
	return filepath.Join(c.State.Dir, "state.json")
}

// CookieFile returns the path of the persisted refresh-cookie file.
func (c *Config) CookieFile() string {
	return filepath.Join(c.State.Dir, "cookies.json")
}

// LogFile returns the configured log file, or the default one under the
// state directory when none is set.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.State.Dir, "wisal.log")
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wisal"), nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	home, _ := os.UserHomeDir()

	v.SetDefault("api.base_url", "https://api.wisal.org/api/v1")
	v.SetDefault("api.locale", "ar")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("state.dir", filepath.Join(home, ".wisal"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
}
