package textorize

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// DecodeEntity decodes one entity token such as "&lt;", "&#60;" or
// "&gt   ;". Entities that do not resolve completely to a character
// reference are returned unchanged.
func DecodeEntity(text string) string {
	body, ok := strings.CutPrefix(text, "&")
	if !ok {
		return text
	}
	body, ok = strings.CutSuffix(body, ";")
	if !ok {
		return text
	}

	ref := "&" + strings.TrimRightFunc(body, unicode.IsSpace) + ";"
	decoded := html.UnescapeString(ref)

	// UnescapeString falls back to the longest known prefix ("&ampx;" becomes
	// "&x;"); only a full match consumes the terminating ';'.
	if decoded == ref || (len(decoded) > 1 && strings.HasSuffix(decoded, ";")) {
		return text
	}
	return decoded
}
