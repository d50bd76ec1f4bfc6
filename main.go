package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/breezy/internal/key"
	"github.com/dtnitsch/breezy/internal/summarize"
	"github.com/dtnitsch/breezy/models"
	"github.com/dtnitsch/breezy/pkg/help"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "breezy",
		Usage: "Summarize the page you are reading, or any URL, with Gemini",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML config file",
				EnvVars: []string{"BREEZY_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "SQLite credential database (default: <user config dir>/breezy/breezy.db)",
				EnvVars: []string{"BREEZY_DB"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, yaml",
				EnvVars: []string{"BREEZY_FORMAT"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Debug logging",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Gemini API key, used instead of the stored one",
				EnvVars: []string{"GEMINI_API_KEY", "BREEZY_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "model",
				Value:   models.DefaultModel,
				Usage:   "Gemini model",
				EnvVars: []string{"BREEZY_MODEL"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Value:   models.DefaultEndpoint,
				Usage:   "Gemini API base URL",
				EnvVars: []string{"BREEZY_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "proxy-url",
				Value:   models.DefaultProxyURL,
				Usage:   "CORS proxy base URL, called as <proxy>/raw?url=<target>",
				EnvVars: []string{"BREEZY_PROXY_URL"},
			},
			&cli.StringFlag{
				Name:    "browser-url",
				Value:   models.DefaultBrowserURL,
				Usage:   "Chrome DevTools endpoint (start Chrome with --remote-debugging-port=9222)",
				EnvVars: []string{"BREEZY_BROWSER_URL"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   models.DefaultTimeout,
				Usage:   "Network timeout for fetch and summarize calls",
				EnvVars: []string{"BREEZY_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:    "detect-language",
				Usage:   "Tag extracted content with its detected language",
				EnvVars: []string{"BREEZY_DETECT_LANGUAGE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "page",
				Usage:  "Summarize the active browser tab",
				Action: summarize.PageAction,
			},
			{
				Name:      "url",
				Usage:     "Summarize a URL fetched through the proxy",
				ArgsUsage: "<URL>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "readability",
						Usage: "Distill the main article before summarizing",
					},
				},
				Action: summarize.URLAction,
			},
			{
				Name:  "extract",
				Usage: "Extract content without summarizing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Extract this URL instead of the active tab",
					},
					&cli.BoolFlag{
						Name:  "readability",
						Usage: "Distill the main article (URL mode only)",
					},
				},
				Action: summarize.ExtractAction,
			},
			{
				Name:  "key",
				Usage: "Manage the stored Gemini API key",
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Save an API key",
						ArgsUsage: "<KEY>",
						Action:    key.SetAction,
					},
					{
						Name:   "show",
						Usage:  "Show the stored key, masked",
						Action: key.ShowAction,
					},
					{
						Name:   "clear",
						Usage:  "Remove the stored key",
						Action: key.ClearAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a short usage guide",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.QuickstartYAML)
					return nil
				},
			},
		},
	}
}
