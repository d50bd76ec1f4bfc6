package models

import (
	"fmt"
	"math"
	"strings"
)

// WordsPerMinute is the reading speed used for reading time estimates.
const WordsPerMinute = 200

// ScrapedContent is the normalized result of extracting a page or URL.
type ScrapedContent struct {
	Title    string          `json:"title" yaml:"title"`
	Content  string          `json:"content" yaml:"content"`
	Metadata ContentMetadata `json:"metadata" yaml:"metadata"`
}

// EmptyScrapedContent returns the sentinel used when page extraction fails.
func EmptyScrapedContent(timestamp string) ScrapedContent {
	return ScrapedContent{
		Metadata: ContentMetadata{
			Timestamp:   timestamp,
			ReadingTime: FormatReadingTime(0),
			WordCount:   0,
		},
	}
}

// IsEmpty reports whether extraction produced no usable text.
func (s ScrapedContent) IsEmpty() bool {
	return s.Content == ""
}

// CountWords splits on whitespace runs.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingMinutes is max(1, ceil(words/200)).
func ReadingMinutes(wordCount int) int {
	minutes := int(math.Ceil(float64(wordCount) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// FormatReadingTime renders minutes as "<N> min read".
func FormatReadingTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}
