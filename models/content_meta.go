package models

type ContentMetadata struct {
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Timestamp   string `json:"timestamp" yaml:"timestamp"` // RFC 3339, UTC
	ReadingTime string `json:"readingTime" yaml:"reading_time"`
	WordCount   int    `json:"wordCount" yaml:"word_count"`

	// Enrichment, omitted when not computed
	Description        string  `json:"description,omitempty" yaml:"description,omitempty"` // meta description
	Language           string  `json:"language,omitempty" yaml:"language,omitempty"`       // ISO-639-1 (e.g. "en")
	LanguageConfidence float64 `json:"languageConfidence,omitempty" yaml:"language_confidence,omitempty"`
	Distilled          bool    `json:"distilled,omitempty" yaml:"distilled,omitempty"` // go-readability pass applied
}
