package extractor

import (
	"strings"
	"testing"
)

func articlePage() string {
	var sb strings.Builder
	sb.WriteString(`<html><head><title>Distilled</title>
<meta name="description" content="Article about rivers."></head><body>
<div id="sidebar"><ul><li>Sidebar link that is fairly long indeed</li></ul></div>
<div id="main"><article><h1>Rivers of the world and where they go</h1>`)
	for i := 0; i < 8; i++ {
		sb.WriteString(`<p>Rivers carry water from highlands to the sea, shaping valleys, feeding farmland, and supporting the towns that grow along their banks over many centuries.</p>`)
	}
	sb.WriteString(`</article></div></body></html>`)
	return sb.String()
}

func TestFromHTML_Readability(t *testing.T) {
	e := newTestExtractor(WithReadability(true))

	got, err := e.FromHTML(articlePage(), "https://example.com/rivers")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	if !got.Metadata.Distilled {
		t.Error("Metadata.Distilled = false, want the readability pass to succeed")
	}
	if got.Title != "Distilled" {
		t.Errorf("Title = %q, want %q", got.Title, "Distilled")
	}
	if !strings.HasPrefix(got.Content, "Article about rivers.\n\n") {
		t.Errorf("Content should start with the meta description, got %q", got.Content)
	}
	if !strings.Contains(got.Content, "Rivers carry water from highlands to the sea") {
		t.Error("Content is missing the article body")
	}
	if got.Metadata.WordCount != len(strings.Fields(got.Content)) {
		t.Errorf("WordCount = %d, want %d", got.Metadata.WordCount, len(strings.Fields(got.Content)))
	}
}

func TestFromHTML_ReadabilityBadURLFallsBack(t *testing.T) {
	e := newTestExtractor(WithReadability(true))

	got, err := e.FromHTML(articlePage(), "://not a url")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if got.Metadata.Distilled {
		t.Error("Distilled = true, want false after fallback")
	}
	if !strings.Contains(got.Content, "Sidebar link that is fairly long indeed") {
		t.Error("fallback should keep the full document text")
	}
}

func TestLanguageDetector(t *testing.T) {
	d := NewLanguageDetector()

	code, confidence := d.Detect("The quick brown fox jumps over the lazy dog while the farmer watches from the porch of the old house.")
	if code != "en" {
		t.Errorf("Detect() code = %q, want %q", code, "en")
	}
	if confidence <= 0 || confidence > 1 {
		t.Errorf("Detect() confidence = %v, want (0, 1]", confidence)
	}
}

func TestLanguageDetector_SupportedLanguages(t *testing.T) {
	d := NewLanguageDetector()

	tests := map[string]string{
		"en": "The committee will publish its findings on the river survey next spring.",
		"fr": "Le comité publiera les résultats de son étude sur la rivière au printemps prochain.",
		"es": "El comité publicará los resultados de su estudio sobre el río la próxima primavera.",
		"de": "Der Ausschuss wird seine Ergebnisse zur Flussuntersuchung im nächsten Frühjahr veröffentlichen.",
	}
	for want, text := range tests {
		if got, _ := d.Detect(text); got != want {
			t.Errorf("Detect(%q) = %q, want %q", text, got, want)
		}
	}

	supported := make(map[string]bool, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		supported[strings.ToLower(lang.IsoCode639_1().String())] = true
	}
	if got, _ := d.Detect("Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor."); got != "" && !supported[got] {
		t.Errorf("Detect() = %q, outside the supported set", got)
	}
}

func TestFromSnapshot_LanguageTag(t *testing.T) {
	e := newTestExtractor(WithLanguageDetector(NewLanguageDetector()))

	got := e.FromSnapshot(Snapshot{Texts: []string{
		"Die Katze schläft auf dem warmen Fensterbrett, während draußen der Regen fällt.",
	}}, "")
	if got.Metadata.Language != "de" {
		t.Errorf("Metadata.Language = %q, want %q", got.Metadata.Language, "de")
	}

	empty := e.FromSnapshot(Snapshot{}, "")
	if empty.Metadata.Language != "" {
		t.Errorf("Metadata.Language = %q for empty content, want empty", empty.Metadata.Language)
	}
}
