// Package htmlsanitize strips unsafe HTML from user-supplied content
// before it is stored or rendered.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// ugc permits the formatting users may reasonably paste into
	// announcement bodies: paragraphs, emphasis, lists, tables, links.
	ugc = bluemonday.UGCPolicy()

	// strict reduces input to plain text. Used for single-line fields
	// like leave reasons and names.
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans rich-text content, removing scripts, event handlers,
// and javascript: URLs while preserving safe formatting.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// SanitizeText strips all markup, leaving plain text.
func SanitizeText(s string) string {
	return strict.Sanitize(s)
}
