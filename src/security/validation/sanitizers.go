// backend/src/security/validation/sanitizers.go
package validation

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// strictHTMLPolicy removes all HTML tags.
var strictHTMLPolicy = bluemonday.StrictPolicy()

// SanitizeText strips HTML and non-printable characters from free text such
// as comments, broker names and asset names before they are stored. Entities
// produced by the policy are decoded again, the result is plain text.
func SanitizeText(s string) string {
	return strings.TrimSpace(StripUnprintable(html.UnescapeString(strictHTMLPolicy.Sanitize(s))))
}

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
