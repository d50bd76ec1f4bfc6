package extractor

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtnitsch/breezy/models"
)

// ErrNoActiveTab is returned by a TabProvider when no tab has focus.
var ErrNoActiveTab = errors.New("no active tab")

// TabProvider is the host capability for reaching the user's active tab.
type TabProvider interface {
	ActiveTab(ctx context.Context) (Tab, error)
}

// Tab runs an extraction script in a page's document context.
type Tab interface {
	URL() string
	Run(ctx context.Context, script string) (Snapshot, error)
}

// SnapshotScript is injected into the tab. It returns a JSON encoded Snapshot.
var SnapshotScript = fmt.Sprintf(`() => {
	const meta = document.querySelector('meta[name="description"]');
	const texts = Array.from(document.querySelectorAll(%q))
		.map(el => (el.textContent || '').trim());
	return JSON.stringify({
		title: document.title || '',
		description: meta ? (meta.getAttribute('content') || '').trim() : '',
		texts: texts,
	});
}`, Selector)

// FromActiveTab extracts the active tab. It never fails: any error is logged
// and the empty sentinel is returned, which callers treat as "nothing to summarize".
func (e *Extractor) FromActiveTab(ctx context.Context, tabs TabProvider) (content models.ScrapedContent) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("page extraction panicked", "panic", r)
			content = e.Empty()
		}
	}()

	if tabs == nil {
		e.logger.Warn("page extraction unavailable", "error", "no tab provider")
		return e.Empty()
	}

	tab, err := tabs.ActiveTab(ctx)
	if err != nil {
		e.logger.Warn("failed to find active tab", "error", err)
		return e.Empty()
	}

	snap, err := tab.Run(ctx, SnapshotScript)
	if err != nil {
		e.logger.Warn("failed to run extraction script", "url", tab.URL(), "error", err)
		return e.Empty()
	}

	return e.FromSnapshot(snap, tab.URL())
}
