package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/breezy/models"
	"github.com/go-shiori/go-readability"
)

// FromHTML parses raw HTML and extracts it. Parse errors are returned.
func (e *Extractor) FromHTML(html, pageURL string) (models.ScrapedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.ScrapedContent{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if !e.distill {
		return e.FromDocument(doc, pageURL), nil
	}

	snap := SnapshotDocument(doc)
	texts, err := distillTexts(html, pageURL)
	if err != nil {
		e.logger.Warn("readability pass failed, using full document", "url", pageURL, "error", err)
		return e.FromSnapshot(snap, pageURL), nil
	}
	snap.Texts = texts

	content := e.FromSnapshot(snap, pageURL)
	content.Metadata.Distilled = true
	return content, nil
}

// distillTexts lets go-readability find the main article, then selects the
// allowlisted tags inside the distilled markup.
func distillTexts(html, pageURL string) ([]string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse distilled HTML: %w", err)
	}
	return selectTexts(doc.Selection), nil
}
