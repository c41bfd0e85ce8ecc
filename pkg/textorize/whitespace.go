package textorize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReduceWhitespace replaces every run of whitespace in s with a single
// space. All other bytes are kept in order, including invalid UTF-8.
func ReduceWhitespace(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
		} else {
			inSpace = false
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// trimLeadingLineBreak removes one leading "\r\n", "\n" or "\r".
func trimLeadingLineBreak(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return s[2:]
	case strings.HasPrefix(s, "\n"), strings.HasPrefix(s, "\r"):
		return s[1:]
	default:
		return s
	}
}

// isBlank reports whether s is empty or contains only whitespace.
func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
