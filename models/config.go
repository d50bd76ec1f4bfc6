// Package models defines data structures for configuration, extraction and summaries.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint   = "https://generativelanguage.googleapis.com"
	DefaultModel      = "gemini-1.5-flash"
	DefaultProxyURL   = "https://api.allorigins.win"
	DefaultBrowserURL = "http://127.0.0.1:9222"
	DefaultTimeout    = 60 * time.Second
)

// Config holds runtime configuration. Values come from CLI flags, environment
// variables, or an optional YAML file, in that order of precedence.
type Config struct {
	DBPath         string        `yaml:"db_path"`
	APIKey         string        `yaml:"api_key"`
	Model          string        `yaml:"model"`
	Endpoint       string        `yaml:"endpoint"`
	ProxyURL       string        `yaml:"proxy_url"`
	BrowserURL     string        `yaml:"browser_url"`
	Timeout        time.Duration `yaml:"timeout"`
	Format         string        `yaml:"format"`
	Readability    bool          `yaml:"readability"`
	DetectLanguage bool          `yaml:"detect_language"`
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Model:      DefaultModel,
		Endpoint:   DefaultEndpoint,
		ProxyURL:   DefaultProxyURL,
		BrowserURL: DefaultBrowserURL,
		Timeout:    DefaultTimeout,
		Format:     "text",
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// An empty path means no file; a named file must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, fmt.Errorf("config file %s does not exist: %w", path, err)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
