package source

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Extensions maps file extensions to the format they imply.
var Extensions = map[string]Format{
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".xhtml":    FormatHTML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".mdown":    FormatMarkdown,
	".txt":      FormatText,
	".text":     FormatText,
}

// classifierCandidates restricts the go-enry classifier to the formats
// this package can convert.
var classifierCandidates = []string{"HTML", "Markdown", "Text"}

// Detect returns the format of content, using path as a hint when set.
// Content that cannot be classified is treated as HTML, since HTML
// conversion accepts any text.
func Detect(path string, content []byte) Format {
	// Strategy 1: File extension.
	if path != "" {
		if f, ok := Extensions[strings.ToLower(filepath.Ext(path))]; ok {
			return f
		}
		if lang, safe := enry.GetLanguageByExtension(path); safe {
			if f := fromLanguage(lang); f != "" {
				return f
			}
		}
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return FormatText
	}

	// Strategy 2: Patterns that are highly indicative.
	if f := detectByPattern(trimmed); f != "" {
		return f
	}

	// Strategy 3: Classifier restricted to supported formats.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe {
		if f := fromLanguage(lang); f != "" {
			return f
		}
	}

	return FormatHTML
}

// IsBinary reports whether content looks like binary data that should not
// be converted.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// detectByPattern checks markup that identifies a format on its own.
func detectByPattern(trimmed []byte) Format {
	if detectHTML(trimmed) {
		return FormatHTML
	}
	if detectMarkdown(trimmed) {
		return FormatMarkdown
	}
	if !bytes.ContainsAny(trimmed, "<&") {
		return FormatText
	}
	return ""
}

// detectHTML checks for document-level HTML or a high density of tags.
func detectHTML(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	if bytes.HasPrefix(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<body")) {
		return true
	}

	tags := bytes.Count(lower, []byte("</")) + bytes.Count(lower, []byte("/>"))
	lines := bytes.Count(lower, []byte("\n")) + 1
	return tags > 0 && tags*2 >= lines
}

// detectMarkdown checks for Markdown headings, fences and list markers
// at the start of lines.
func detectMarkdown(trimmed []byte) bool {
	score := 0
	for line := range bytes.Lines(trimmed) {
		line = bytes.TrimSpace(line)
		switch {
		case bytes.HasPrefix(line, []byte("# ")), bytes.HasPrefix(line, []byte("## ")):
			score += 2
		case bytes.HasPrefix(line, []byte("```")):
			score += 2
		case bytes.HasPrefix(line, []byte("- ")), bytes.HasPrefix(line, []byte("* ")):
			score++
		case bytes.Contains(line, []byte("](")):
			score++
		}
	}
	return score >= 2
}

// fromLanguage maps go-enry language names to formats.
func fromLanguage(lang string) Format {
	switch lang {
	case "HTML":
		return FormatHTML
	case "Markdown":
		return FormatMarkdown
	case "Text":
		return FormatText
	default:
		return ""
	}
}
