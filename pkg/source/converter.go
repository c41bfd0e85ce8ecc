package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"github.com/yaklabco/textorize/pkg/textorize"
)

// Markdown flavors supported by the converter.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

var (
	// ErrUnknownFormat is returned for format names that are not recognized.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrBinaryContent is returned when the input looks like binary data.
	ErrBinaryContent = errors.New("binary content")
)

// Renderer converts a document of a known format to plain text.
type Renderer interface {
	Convert(ctx context.Context, format Format, content []byte) (string, error)
}

// Converter turns documents of any supported format into plain text.
type Converter struct {
	flavor string
	md     goldmark.Markdown
	text   *textorize.Converter
}

// NewConverter creates a converter rendering Markdown in the given flavor.
// Unknown flavors fall back to CommonMark.
func NewConverter(flavor string) *Converter {
	f := flavorOrDefault(flavor)
	return &Converter{
		flavor: f,
		md:     newGoldmarkInstance(f),
		text:   textorize.New(),
	}
}

// Flavor returns the configured Markdown flavor.
func (c *Converter) Flavor() string {
	return c.flavor
}

// Convert converts content of the given format to plain text. FormatAuto
// is resolved with Detect on the content alone.
func (c *Converter) Convert(ctx context.Context, format Format, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("convert cancelled: %w", err)
	}
	if IsBinary(content) {
		return "", ErrBinaryContent
	}

	if format == FormatAuto {
		format = Detect("", content)
	}

	switch format {
	case FormatHTML:
		return c.text.Convert(string(content)), nil
	case FormatMarkdown:
		rendered, err := c.RenderMarkdown(content)
		if err != nil {
			return "", err
		}
		return c.text.Convert(rendered), nil
	case FormatText:
		return c.text.Convert(html.EscapeString(string(content))), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
