package source

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderMarkdown renders Markdown content to HTML.
func (c *Converter) RenderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	buf.Grow(len(content) * 2)
	if err := c.md.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

func flavorOrDefault(flavor string) string {
	if flavor == FlavorGFM {
		return FlavorGFM
	}
	return FlavorCommonMark
}

// newGoldmarkInstance creates a goldmark instance for the given flavor.
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			extension.TaskList,
		))
	}

	return goldmark.New(opts...)
}
