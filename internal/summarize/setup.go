package summarize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/breezy/internal/common"
	"github.com/dtnitsch/breezy/models"
	"github.com/dtnitsch/breezy/pkg/browser"
	"github.com/dtnitsch/breezy/pkg/credentials"
	"github.com/dtnitsch/breezy/pkg/db"
	"github.com/dtnitsch/breezy/pkg/extractor"
	"github.com/dtnitsch/breezy/pkg/fetcher"
	"github.com/dtnitsch/breezy/pkg/orchestrator"
	"github.com/dtnitsch/breezy/pkg/summarizer"
	"github.com/urfave/cli/v2"
)

// components is everything a summarize or extract command needs.
type components struct {
	config    models.Config
	logger    *slog.Logger
	database  *db.DB
	extractor *extractor.Extractor
	fetcher   *fetcher.Fetcher
	tabs      *browser.Provider
}

func newComponents(c *cli.Context) (*components, error) {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	logger := common.NewLogger(c.App.ErrWriter, c.Bool("quiet"), c.Bool("verbose"))

	opts := []extractor.Option{
		extractor.WithReadability(cfg.Readability),
		extractor.WithLogger(logger),
	}
	if cfg.DetectLanguage {
		opts = append(opts, extractor.WithLanguageDetector(extractor.NewLanguageDetector()))
	}
	ex := extractor.New(opts...)

	return &components{
		config:    cfg,
		logger:    logger,
		extractor: ex,
		fetcher:   fetcher.NewFetcher(cfg.ProxyURL, cfg.Timeout, ex, logger),
		tabs:      browser.NewProvider(cfg.BrowserURL, logger),
	}, nil
}

// store opens the credential database, honoring an --api-key override.
func (cp *components) store() (credentials.Store, error) {
	database, err := db.Open(cp.config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	cp.database = database
	return credentials.WithOverride(credentials.NewDBStore(database), cp.config.APIKey), nil
}

func (cp *components) orchestrator(c *cli.Context) (*orchestrator.Orchestrator, error) {
	store, err := cp.store()
	if err != nil {
		return nil, err
	}

	client := summarizer.NewClient(summarizer.Config{
		Endpoint: cp.config.Endpoint,
		Model:    cp.config.Model,
		Timeout:  cp.config.Timeout,
		Logger:   cp.logger,
	})

	return orchestrator.New(
		orchestrator.PageFunc(cp.extractPage),
		cp.fetcher,
		client,
		store,
		orchestrator.WithNotifier(orchestrator.WriterNotifier{W: c.App.ErrWriter}),
		orchestrator.WithLogger(cp.logger),
	), nil
}

func (cp *components) extractPage(ctx context.Context) models.ScrapedContent {
	return cp.extractor.FromActiveTab(ctx, cp.tabs)
}

func (cp *components) Close() {
	_ = cp.tabs.Close()
	if cp.database != nil {
		_ = cp.database.Close()
	}
}
