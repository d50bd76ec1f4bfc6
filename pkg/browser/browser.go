// Package browser reaches the user's active tab in a running Chrome over the
// DevTools protocol and runs extraction scripts in its document context.
//
// Chrome must be started with --remote-debugging-port. The browser is never
// closed by this package; Close only drops the DevTools connection.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dtnitsch/breezy/pkg/extractor"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

const focusScript = `() => JSON.stringify({
	visible: document.visibilityState === 'visible',
	focused: document.hasFocus(),
})`

// Provider implements extractor.TabProvider against a remote Chrome.
type Provider struct {
	browserURL string
	logger     *slog.Logger

	browser *rod.Browser
	cancel  context.CancelFunc
}

func NewProvider(browserURL string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{browserURL: browserURL, logger: logger}
}

// connect resolves the DevTools websocket and connects once.
func (p *Provider) connect(ctx context.Context) (*rod.Browser, error) {
	if p.browser != nil {
		return p.browser, nil
	}

	wsURL := p.browserURL
	if !strings.HasPrefix(wsURL, "ws://") && !strings.HasPrefix(wsURL, "wss://") {
		resolved, err := launcher.ResolveURL(p.browserURL)
		if err != nil {
			return nil, fmt.Errorf("browser: resolve %s: %w", p.browserURL, err)
		}
		wsURL = resolved
	}

	connCtx, cancel := context.WithCancel(context.Background())
	b := rod.New().Context(connCtx).ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		cancel()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	p.logger.Debug("browser: connected", "url", wsURL)
	p.browser = b
	p.cancel = cancel
	return b, nil
}

// ActiveTab returns the focused tab, or the first visible one.
func (p *Provider) ActiveTab(ctx context.Context) (extractor.Tab, error) {
	b, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	pages, err := b.Context(ctx).Pages()
	if err != nil {
		return nil, fmt.Errorf("browser: list tabs: %w", err)
	}

	var tabs []*Tab
	var states []tabState
	for _, page := range pages {
		info, err := page.Info()
		if err != nil || !scriptable(info.URL) {
			continue
		}

		state, err := probe(ctx, page)
		if err != nil {
			p.logger.Debug("browser: probe failed", "url", info.URL, "error", err)
			continue
		}
		tabs = append(tabs, &Tab{page: page, url: info.URL})
		states = append(states, state)
	}

	idx, ok := chooseActive(states)
	if !ok {
		return nil, extractor.ErrNoActiveTab
	}
	p.logger.Debug("browser: active tab", "url", tabs[idx].url, "candidates", len(tabs))
	return tabs[idx], nil
}

// Close drops the DevTools connection. Chrome keeps running.
func (p *Provider) Close() error {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.browser = nil
	return nil
}

type tabState struct {
	Visible bool `json:"visible"`
	Focused bool `json:"focused"`
}

func probe(ctx context.Context, page *rod.Page) (tabState, error) {
	var state tabState
	res, err := page.Context(ctx).Eval(focusScript)
	if err != nil {
		return state, err
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), &state); err != nil {
		return state, fmt.Errorf("browser: decode tab state: %w", err)
	}
	return state, nil
}

// chooseActive prefers a focused tab, then the first visible one.
func chooseActive(states []tabState) (int, bool) {
	for i, s := range states {
		if s.Focused && s.Visible {
			return i, true
		}
	}
	for i, s := range states {
		if s.Visible {
			return i, true
		}
	}
	return 0, false
}

// scriptable filters out pages Chrome refuses to inject scripts into.
func scriptable(pageURL string) bool {
	for _, prefix := range []string{"chrome://", "chrome-extension://", "devtools://", "about:", "edge://"} {
		if strings.HasPrefix(pageURL, prefix) {
			return false
		}
	}
	return pageURL != ""
}

// Tab is a single Chrome page.
type Tab struct {
	page *rod.Page
	url  string
}

func (t *Tab) URL() string { return t.url }

// Run evaluates script in the page. The script must return a JSON encoded
// extractor.Snapshot.
func (t *Tab) Run(ctx context.Context, script string) (extractor.Snapshot, error) {
	var snap extractor.Snapshot
	res, err := t.page.Context(ctx).Eval(script)
	if err != nil {
		return snap, fmt.Errorf("browser: run script in %s: %w", t.url, err)
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), &snap); err != nil {
		return snap, fmt.Errorf("browser: decode snapshot: %w", err)
	}
	return snap, nil
}
