// Package textorize converts HTML fragments into readable plain text.
//
// The conversion is a single forward pass: a Scanner splits the input into
// tokens, a balance stack pairs closing tags with their openers, and a
// Writer renders each token. Paragraphs, line breaks and rules become
// newlines, list items become indented "- " bullets, script and style
// bodies are dropped, pre blocks keep their whitespace and entities are
// decoded. Malformed markup is never an error; it is kept as literal text.
//
// Textorize is safe for concurrent use. A Converter holds no per-call state
// and may be shared as well.
package textorize

// Converter runs the conversion pipeline with a configurable Writer.
type Converter struct {
	writer Writer
}

// Option configures a Converter.
type Option func(*Converter)

// WithWriter replaces the default PlainTextWriter.
func WithWriter(w Writer) Option {
	return func(c *Converter) {
		if w != nil {
			c.writer = w
		}
	}
}

// New returns a Converter using PlainTextWriter unless overridden.
func New(opts ...Option) *Converter {
	c := &Converter{writer: PlainTextWriter{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = New()

// Textorize converts an HTML fragment to plain text using the default
// converter. Empty or whitespace-only input yields "".
func Textorize(input string) string {
	return defaultConverter.Convert(input)
}

// Convert converts an HTML fragment to plain text.
func (c *Converter) Convert(input string) string {
	if isBlank(input) {
		return ""
	}

	var (
		sc  = NewScanner(input)
		ctx = &RenderContext{}
		bal balancer
	)
	ctx.out.Grow(len(input))

	for {
		tok := sc.Next()
		if tok.Kind == TokenEOF {
			break
		}
		ctx.Current = tok

		switch tok.Kind {
		case TokenText, TokenEntity:
			c.writer.WriteText(ctx, tok)

		case TokenOpenTag:
			if tok.Element.IsResolvable() {
				bal.push(ctx, tok)
				switch {
				case tok.Element == ElementPre:
					ctx.PreDepth++
				case tok.Element.IsList():
					ctx.ListDepth++
				}
			}
			c.writer.WriteOpen(ctx, tok)

		case TokenCloseTag:
			bal.close(ctx, c.writer, tok)
			switch {
			case tok.Element == ElementPre:
				ctx.PreDepth = max(ctx.PreDepth-1, 0)
			case tok.Element.IsList():
				ctx.ListDepth = max(ctx.ListDepth-1, 0)
			}

		case TokenSelfClosingTag:
			c.writer.WriteOpen(ctx, tok)
		}

		ctx.Previous = tok
	}

	return ctx.Output()
}
