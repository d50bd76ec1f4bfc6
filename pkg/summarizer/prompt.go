package summarizer

// Directive is the fixed instruction placed before the page text.
const Directive = "Please summarize the following text in a concise and informative way, " +
	"capturing the main points and key details. " +
	"Present the summary in clear, well-structured paragraphs:"

// Truncate keeps the first MaxContentLength characters of content.
func Truncate(content string) string {
	if len(content) <= MaxContentLength {
		return content
	}
	runes := []rune(content)
	if len(runes) <= MaxContentLength {
		return content
	}
	return string(runes[:MaxContentLength])
}

// BuildPrompt prefixes content with Directive and a blank line.
func BuildPrompt(content string) string {
	return Directive + "\n\n" + content
}
