package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// starterFile mirrors Config with yaml tags for the generated starter file.
type starterFile struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Locale  string `yaml:"locale"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	State struct {
		Dir string `yaml:"dir"`
	} `yaml:"state"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"log"`
}

// YAML renders the effective configuration in config-file form.
func (c *Config) YAML() ([]byte, error) {
	var sf starterFile
	sf.API.BaseURL = c.API.BaseURL
	sf.API.Locale = c.API.Locale
	sf.API.Timeout = c.API.Timeout.String()
	sf.State.Dir = c.State.Dir
	sf.Log.Level = c.Log.Level
	sf.Log.Format = c.Log.Format
	sf.Log.File = c.Log.File

	return yaml.Marshal(&sf)
}

// WriteStarter writes a config file populated with defaults to path.
// It refuses to overwrite an existing file unless force is set.
func WriteStarter(path string, force bool) error {
	if path == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	home, _ := os.UserHomeDir()

	var sf starterFile
	sf.API.BaseURL = "https://api.wisal.org/api/v1"
	sf.API.Locale = "ar"
	sf.API.Timeout = (30 * time.Second).String()
	sf.State.Dir = filepath.Join(home, ".wisal")
	sf.Log.Level = "info"
	sf.Log.Format = "json"
	sf.Log.File = ""

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
