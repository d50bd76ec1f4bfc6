package common

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/breezy/models"
	"github.com/urfave/cli/v2"
)

// ResolveConfig loads the --config file and lets explicitly set flags
// (command line or environment) override it.
func ResolveConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("api-key") {
		cfg.APIKey = c.String("api-key")
	}
	if c.IsSet("model") {
		cfg.Model = c.String("model")
	}
	if c.IsSet("endpoint") {
		cfg.Endpoint = c.String("endpoint")
	}
	if c.IsSet("proxy-url") {
		cfg.ProxyURL = c.String("proxy-url")
	}
	if c.IsSet("browser-url") {
		cfg.BrowserURL = c.String("browser-url")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("readability") {
		cfg.Readability = c.Bool("readability")
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}

	cfg.Format = strings.ToLower(cfg.Format)
	switch cfg.Format {
	case "text", "json", "yaml":
	default:
		return cfg, fmt.Errorf("unsupported output format: %s (use text, json, or yaml)", cfg.Format)
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	return cfg, nil
}
