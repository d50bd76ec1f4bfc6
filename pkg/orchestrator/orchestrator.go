// Package orchestrator sequences extraction and summarization for one request
// at a time and reports every failure as a user-facing notice.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dtnitsch/breezy/internal/common"
	"github.com/dtnitsch/breezy/models"
	"github.com/dtnitsch/breezy/pkg/credentials"
)

const (
	MsgMissingKey       = "Please save your Gemini API key first"
	MsgNoPageContent    = "Could not extract content from this page"
	MsgNoURLContent     = "Could not extract content from this URL"
	MsgBusy             = "A summary is already being generated"
	MsgGenerationFailed = "Failed to generate summary"
	MsgUnexpected       = "An error occurred"
)

var (
	ErrMissingKey = errors.New("API key is not configured")
	ErrBusy       = errors.New("summarization already in progress")
	ErrNoContent  = errors.New("no content extracted")
	ErrUnexpected = errors.New("unexpected failure")
)

// SummaryError is returned when the summarization client reports failure.
type SummaryError struct {
	Message string
}

func (e *SummaryError) Error() string { return e.Message }

// PageSource extracts the active page. It signals failure with empty content.
type PageSource interface {
	ExtractPage(ctx context.Context) models.ScrapedContent
}

// PageFunc adapts a function to PageSource.
type PageFunc func(ctx context.Context) models.ScrapedContent

func (f PageFunc) ExtractPage(ctx context.Context) models.ScrapedContent { return f(ctx) }

// URLSource fetches and extracts an arbitrary URL. It signals failure with an error.
type URLSource interface {
	Fetch(ctx context.Context, target string) (models.ScrapedContent, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, apiKey, content string) models.SummaryResponse
}

// Orchestrator owns the Idle -> Loading -> {Success, Failure} -> Idle cycle.
type Orchestrator struct {
	page       PageSource
	urls       URLSource
	summarizer Summarizer
	store      credentials.Store
	notifier   Notifier
	observer   func(State)
	logger     *slog.Logger

	mu      sync.Mutex
	state   State
	loading bool
	summary string
	content models.ScrapedContent
}

type Option func(*Orchestrator)

func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

// WithStateObserver is called after every state transition.
func WithStateObserver(fn func(State)) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

func New(page PageSource, urls URLSource, summarizer Summarizer, store credentials.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		page:       page,
		urls:       urls,
		summarizer: summarizer,
		store:      store,
		notifier:   NotifierFunc(func(Level, string) {}),
		logger:     slog.Default(),
		state:      Idle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SummarizePage summarizes the active tab.
func (o *Orchestrator) SummarizePage(ctx context.Context) (models.Result, error) {
	return o.run(ctx, func(ctx context.Context) (models.ScrapedContent, error) {
		content := o.page.ExtractPage(ctx)
		if content.IsEmpty() {
			return content, ErrNoContent
		}
		return content, nil
	}, MsgNoPageContent)
}

// SummarizeURL fetches target through the proxy and summarizes it.
// Malformed URLs are rejected before any state change.
func (o *Orchestrator) SummarizeURL(ctx context.Context, target string) (models.Result, error) {
	cleaned, err := common.ValidateURL(target)
	if err != nil {
		o.notify(LevelError, err.Error())
		return models.Result{}, err
	}

	return o.run(ctx, func(ctx context.Context) (models.ScrapedContent, error) {
		content, err := o.urls.Fetch(ctx, cleaned)
		if err != nil {
			return content, err
		}
		if content.IsEmpty() {
			return content, ErrNoContent
		}
		return content, nil
	}, MsgNoURLContent)
}

func (o *Orchestrator) run(ctx context.Context, extract func(context.Context) (models.ScrapedContent, error), noContentMsg string) (result models.Result, err error) {
	apiKey, err := o.apiKey(ctx)
	if err != nil {
		return result, err
	}

	if !o.begin() {
		o.notify(LevelError, MsgBusy)
		return result, ErrBusy
	}
	defer o.finish()
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("summarization panicked", "panic", r)
			o.notify(LevelError, MsgUnexpected)
			o.transition(Failure)
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	content, err := extract(ctx)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, ErrNoContent) {
			msg = noContentMsg
		}
		o.logger.Warn("extraction failed", "error", err)
		o.notify(LevelError, msg)
		return models.Result{Content: content}, err
	}
	result.Content = content

	o.logger.Info("summarizing content", "title", content.Title, "url", content.Metadata.URL, "word_count", content.Metadata.WordCount)
	result.Summary = o.summarizer.Summarize(ctx, apiKey, content.Content)

	if result.Summary.Success && result.Summary.Summary != "" {
		o.mu.Lock()
		o.summary = result.Summary.Summary
		o.content = content
		o.mu.Unlock()
		o.transition(Success)
		return result, nil
	}

	msg := result.Summary.Error
	if msg == "" {
		msg = MsgGenerationFailed
	}
	o.notify(LevelError, msg)
	o.transition(Failure)
	return result, &SummaryError{Message: msg}
}

// apiKey reads the credential; absence is a configuration error.
func (o *Orchestrator) apiKey(ctx context.Context) (string, error) {
	key, ok, err := o.store.Get(ctx, credentials.APIKeyName)
	if err != nil {
		o.notify(LevelError, fmt.Sprintf("Could not read API key: %v", err))
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	if !ok || key == "" {
		o.notify(LevelError, MsgMissingKey)
		return "", ErrMissingKey
	}
	return key, nil
}

// begin enters Loading unless a request is already in flight.
func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	if o.loading {
		o.mu.Unlock()
		return false
	}
	o.loading = true
	o.summary = ""
	o.content = models.ScrapedContent{}
	o.mu.Unlock()

	o.transition(Loading)
	return true
}

func (o *Orchestrator) finish() {
	o.mu.Lock()
	o.loading = false
	o.mu.Unlock()
	o.transition(Idle)
}

func (o *Orchestrator) transition(s State) {
	o.mu.Lock()
	o.state = s
	observer := o.observer
	o.mu.Unlock()

	o.logger.Debug("state changed", "state", s.String())
	if observer != nil {
		observer(s)
	}
}

func (o *Orchestrator) notify(level Level, message string) {
	o.notifier.Notify(level, message)
}

// State reports the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Loading reports whether a request is in flight.
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// Summary returns the last successful summary, cleared when a new request starts.
func (o *Orchestrator) Summary() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.summary
}

// Content returns the content behind the last successful summary.
func (o *Orchestrator) Content() models.ScrapedContent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.content
}
