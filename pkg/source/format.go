// Package source turns input documents of different formats into plain
// text. HTML is converted directly; Markdown is rendered to HTML with
// goldmark first; plain text is escaped so only whitespace is normalized.
package source

import (
	"fmt"
	"strings"
)

// Format identifies the markup of an input document.
type Format string

// Supported input formats.
const (
	// FormatAuto selects the format per file with Detect.
	FormatAuto Format = "auto"

	// FormatHTML is HTML or an HTML fragment.
	FormatHTML Format = "html"

	// FormatMarkdown is CommonMark or GitHub Flavored Markdown.
	FormatMarkdown Format = "markdown"

	// FormatText is plain text.
	FormatText Format = "text"
)

// ValidFormats returns all valid format values.
func ValidFormats() []Format {
	return []Format{FormatAuto, FormatHTML, FormatMarkdown, FormatText}
}

// IsValid returns true if the format is a recognized value.
func (f Format) IsValid() bool {
	switch f {
	case FormatAuto, FormatHTML, FormatMarkdown, FormatText:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a string into a Format. It accepts "md" and "txt"
// as aliases and is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: auto, html, markdown, text)", ErrUnknownFormat, s)
	}
}
