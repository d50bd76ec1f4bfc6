// Package extractor turns a document into a models.ScrapedContent record.
//
// Documents arrive either as parsed HTML (URL path) or as a Snapshot produced by
// running SnapshotScript inside a live browser tab (page path). Both are reduced
// to a Snapshot first so the filtering, joining and counting rules are shared.
package extractor

import (
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/breezy/models"
)

const (
	// Selector is the tag allowlist, matched in document order.
	Selector = "p, h1, h2, h3, h4, h5, h6, li, article, section"

	// MinTextLength is the noise threshold; a segment must be strictly longer.
	MinTextLength = 20

	segmentSeparator = "\n\n"
	timestampLayout  = "2006-01-02T15:04:05.000Z07:00"
)

// Snapshot is the raw material pulled out of a document before filtering.
type Snapshot struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Texts       []string `json:"texts"`
}

// Extractor builds ScrapedContent records.
type Extractor struct {
	distill  bool
	language *LanguageDetector
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Extractor)

// WithReadability runs go-readability over raw HTML before selecting text.
func WithReadability(enabled bool) Option {
	return func(e *Extractor) { e.distill = enabled }
}

// WithLanguageDetector tags content with its detected language.
func WithLanguageDetector(d *LanguageDetector) Option {
	return func(e *Extractor) { e.language = d }
}

func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

func New(opts ...Option) *Extractor {
	e := &Extractor{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timestamp returns the current time in ISO-8601 with millisecond precision.
func (e *Extractor) Timestamp() string {
	return e.now().UTC().Format(timestampLayout)
}

// Empty returns the failure sentinel stamped with the current time.
func (e *Extractor) Empty() models.ScrapedContent {
	return models.EmptyScrapedContent(e.Timestamp())
}

// FromDocument extracts from an already parsed document.
func (e *Extractor) FromDocument(doc *goquery.Document, pageURL string) models.ScrapedContent {
	return e.FromSnapshot(SnapshotDocument(doc), pageURL)
}

// FromSnapshot applies the noise filter, joins segments and fills in metadata.
func (e *Extractor) FromSnapshot(snap Snapshot, pageURL string) models.ScrapedContent {
	segments := make([]string, 0, len(snap.Texts))
	for _, text := range snap.Texts {
		text = strings.TrimSpace(text)
		if utf8.RuneCountInString(text) > MinTextLength {
			segments = append(segments, text)
		}
	}

	content := strings.Join(segments, segmentSeparator)
	if snap.Description != "" {
		content = snap.Description + segmentSeparator + content
	}

	wordCount := models.CountWords(content)
	meta := models.ContentMetadata{
		URL:         pageURL,
		Timestamp:   e.Timestamp(),
		ReadingTime: models.FormatReadingTime(models.ReadingMinutes(wordCount)),
		WordCount:   wordCount,
		Description: snap.Description,
	}

	if e.language != nil && content != "" {
		meta.Language, meta.LanguageConfidence = e.language.Detect(content)
	}

	return models.ScrapedContent{
		Title:    snap.Title,
		Content:  content,
		Metadata: meta,
	}
}

// SnapshotDocument reads title, meta description and allowlisted text from doc.
func SnapshotDocument(doc *goquery.Document) Snapshot {
	snap := Snapshot{
		Title:       documentTitle(doc),
		Description: metaDescription(doc),
	}
	snap.Texts = selectTexts(doc.Selection)
	return snap
}

func selectTexts(root *goquery.Selection) []string {
	var texts []string
	root.Find(Selector).Each(func(i int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

// documentTitle mirrors document.title: first <title>, whitespace collapsed.
func documentTitle(doc *goquery.Document) string {
	title := doc.Find("head title").First()
	if title.Length() == 0 {
		title = doc.Find("title").First()
	}
	return strings.Join(strings.Fields(title.Text()), " ")
}

func metaDescription(doc *goquery.Document) string {
	content, ok := doc.Find(`meta[name="description"]`).First().Attr("content")
	if !ok {
		return ""
	}
	return strings.TrimSpace(content)
}
