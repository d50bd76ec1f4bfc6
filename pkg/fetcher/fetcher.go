// Package fetcher retrieves arbitrary pages through a CORS-relaxing proxy
// and extracts them. Unlike page extraction, every failure is returned.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtnitsch/breezy/internal/common"
	"github.com/dtnitsch/breezy/models"
	"github.com/dtnitsch/breezy/pkg/extractor"
)

// StatusError carries the transport status of a failed proxy response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch URL, status code: %d (%s)", e.StatusCode, e.Status)
}

type Fetcher struct {
	client    *http.Client
	proxyURL  string
	extractor *extractor.Extractor
	logger    *slog.Logger
}

func NewFetcher(proxyURL string, timeout time.Duration, ex *extractor.Extractor, logger *slog.Logger) *Fetcher {
	if proxyURL == "" {
		proxyURL = models.DefaultProxyURL
	}
	if ex == nil {
		ex = extractor.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		proxyURL:  strings.TrimRight(proxyURL, "/"),
		extractor: ex,
		logger:    logger,
	}
}

// ProxyURL builds "<proxy>/raw?url=<escaped target>".
func (f *Fetcher) ProxyURL(target string) string {
	return f.proxyURL + "/raw?url=" + url.QueryEscape(target)
}

// Fetch validates target, downloads it through the proxy and extracts it.
func (f *Fetcher) Fetch(ctx context.Context, target string) (models.ScrapedContent, error) {
	cleaned, err := common.ValidateURL(target)
	if err != nil {
		return models.ScrapedContent{}, err
	}

	bodyBytes, err := f.GetHtmlBytes(ctx, cleaned)
	if err != nil {
		return models.ScrapedContent{}, err
	}

	content, err := f.extractor.FromHTML(string(bodyBytes), cleaned)
	if err != nil {
		return models.ScrapedContent{}, err
	}

	f.logger.Debug("fetched and extracted URL", "url", cleaned, "bytes", len(bodyBytes), "word_count", content.Metadata.WordCount)
	return content, nil
}

// GetHtmlBytes returns the raw body the proxy relays for target.
func (f *Fetcher) GetHtmlBytes(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.ProxyURL(target), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}
