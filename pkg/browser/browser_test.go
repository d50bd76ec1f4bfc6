package browser

import (
	"context"
	"testing"

	"github.com/dtnitsch/breezy/pkg/extractor"
)

var _ extractor.TabProvider = (*Provider)(nil)
var _ extractor.Tab = (*Tab)(nil)

func TestChooseActive(t *testing.T) {
	tests := []struct {
		name   string
		states []tabState
		want   int
		wantOK bool
	}{
		{name: "no tabs", states: nil, wantOK: false},
		{name: "all hidden", states: []tabState{{}, {}}, wantOK: false},
		{name: "first visible", states: []tabState{{}, {Visible: true}, {Visible: true}}, want: 1, wantOK: true},
		{name: "focused beats visible", states: []tabState{{Visible: true}, {Visible: true, Focused: true}}, want: 1, wantOK: true},
		{name: "focused but hidden is ignored", states: []tabState{{Focused: true}, {Visible: true}}, want: 1, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := chooseActive(tt.states)
			if ok != tt.wantOK {
				t.Fatalf("chooseActive() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("chooseActive() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScriptable(t *testing.T) {
	tests := map[string]bool{
		"https://example.com":           true,
		"http://localhost:3000/page":    true,
		"chrome://settings":             false,
		"chrome-extension://abc/popup":  false,
		"devtools://devtools/inspector": false,
		"about:blank":                   false,
		"":                              false,
	}
	for pageURL, want := range tests {
		if got := scriptable(pageURL); got != want {
			t.Errorf("scriptable(%q) = %v, want %v", pageURL, got, want)
		}
	}
}

func TestActiveTab_UnreachableBrowser(t *testing.T) {
	p := NewProvider("http://127.0.0.1:1", nil)
	defer p.Close()

	if _, err := p.ActiveTab(context.Background()); err == nil {
		t.Error("ActiveTab() error = nil, want connection error")
	}
}
