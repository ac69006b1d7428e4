// Package markup renders the restricted formatting subset used by chat
// replies: bold, italic, inline code, and line breaks. Links, lists, and
// nested structures are intentionally not supported; anything else comes
// out as escaped text.
package markup

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldRE   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRE = regexp.MustCompile(`\*(.*?)\*`)
	codeRE   = regexp.MustCompile("`([^`]+)`")
)

// Render converts text to HTML. Input is escaped before any formatting is
// applied, so reply content can never inject markup. Bold runs before
// italic so that ** is not consumed as two italics.
func Render(text string) string {
	out := html.EscapeString(text)
	out = boldRE.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRE.ReplaceAllString(out, "<em>$1</em>")
	out = codeRE.ReplaceAllString(out, "<code>$1</code>")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return out
}
