package extractor

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// SupportedLanguages bounds detection to common web languages. Loading every
// lingua model takes seconds on first use.
var SupportedLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Polish,
	lingua.Swedish,
	lingua.Russian,
	lingua.Ukrainian,
	lingua.Turkish,
	lingua.Arabic,
	lingua.Hindi,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
}

// LanguageDetector tags extracted text with an ISO-639-1 code.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a low-accuracy detector over SupportedLanguages.
// Page text is long enough that the trigram models suffice.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(SupportedLanguages...).
			WithLowAccuracyMode().
			Build(),
	}
}

// Detect returns the lower-case ISO code and its confidence, or "" and 0.
func (d *LanguageDetector) Detect(text string) (string, float64) {
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", 0
	}
	code := strings.ToLower(language.IsoCode639_1().String())
	return code, d.detector.ComputeLanguageConfidence(text, language)
}
