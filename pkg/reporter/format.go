package reporter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat for unrecognized names.
var ErrUnknownFormat = errors.New("unknown report format")

// Format names a report layout.
type Format string

// Report formats.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
	FormatDiff    Format = "diff"
)

// formats lists every format in help order.
var formats = []struct {
	format Format
	about  string
}{
	{FormatText, "one line per converted file"},
	{FormatTable, "aligned columns with sizes"},
	{FormatJSON, "machine readable document"},
	{FormatSummary, "totals per format and largest inputs"},
	{FormatDiff, "unified diff of each output file"},
}

// Formats returns the names of all formats.
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f.format)
	}
	return names
}

// Describe returns "name: about" lines for all formats.
func Describe() []string {
	lines := make([]string, len(formats))
	for i, f := range formats {
		lines[i] = fmt.Sprintf("%s: %s", f.format, f.about)
	}
	return lines
}

// ParseFormat parses a case-insensitive format name. The empty string
// selects FormatText.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("%w %q; valid formats: %s", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool {
	for _, known := range formats {
		if known.format == f {
			return true
		}
	}
	return false
}
