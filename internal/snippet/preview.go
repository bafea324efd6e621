package snippet

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

const DefaultPreviewLength = 50

var stripTags = bluemonday.StrictPolicy()

// PlainText strips all markup from content and decodes entities.
func PlainText(content string) string {
	return html.UnescapeString(stripTags.Sanitize(content))
}

// TruncatedPreview returns the plain text of content cut to limit
// characters, with "..." appended when anything was cut. A limit <= 0 uses
// DefaultPreviewLength.
func TruncatedPreview(content string, limit int) string {
	if limit <= 0 {
		limit = DefaultPreviewLength
	}
	plain := PlainText(content)
	r := []rune(plain)
	if len(r) <= limit {
		return plain
	}
	return string(r[:limit]) + "..."
}
