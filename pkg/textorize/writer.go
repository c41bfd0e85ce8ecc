package textorize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnhandledElement is the panic value (wrapped) raised when a writer
// meets an element kind it has no rendering for. It signals a programming
// error, never bad input.
var ErrUnhandledElement = errors.New("unhandled element kind")

// RenderContext is the mutable state shared by the orchestrator, the
// balance engine and the writer during one conversion.
type RenderContext struct {
	out strings.Builder

	// Current is the token being processed; Previous the one before it.
	Current  Token
	Previous Token

	// Element is the kind of the innermost open element, or ElementNone.
	Element ElementKind

	// Depth counts the elements currently on the balance stack.
	Depth int

	// PreDepth and ListDepth count open pre and ul/ol elements.
	PreDepth  int
	ListDepth int
}

// Output returns the text written so far.
func (ctx *RenderContext) Output() string { return ctx.out.String() }

// WriteString appends s to the output buffer.
func (ctx *RenderContext) WriteString(s string) { ctx.out.WriteString(s) }

// InPre reports whether the writer is inside preformatted text.
func (ctx *RenderContext) InPre() bool { return ctx.PreDepth > 0 }

func (ctx *RenderContext) endsOnNewline() bool {
	s := ctx.out.String()
	return s != "" && s[len(s)-1] == '\n'
}

func (ctx *RenderContext) endsOnSpace() bool {
	r, size := utf8.DecodeLastRuneInString(ctx.out.String())
	return size > 0 && unicode.IsSpace(r)
}

// Writer renders tokens into a RenderContext. Implementations decide the
// output format; the orchestrator and balance engine decide when each
// method is called.
type Writer interface {
	WriteOpen(ctx *RenderContext, tok Token)
	WriteClose(ctx *RenderContext, tok Token)
	WriteText(ctx *RenderContext, tok Token)
}

// PlainTextWriter renders layout-bearing elements as line breaks and list
// bullets and drops all other markup. It holds no state of its own.
//
// Open and close rendering dispatch on the kind of the token currently
// being processed, not on tok: when a close tag implicitly closes an
// unmatched opener, the opener is rendered the way the current close tag
// would be.
type PlainTextWriter struct{}

var _ Writer = PlainTextWriter{}

// WriteOpen renders an opening or self-closing tag.
func (w PlainTextWriter) WriteOpen(ctx *RenderContext, tok Token) {
	switch kind := ctx.Current.Element; kind {
	case ElementInvalid:
		w.WriteText(ctx, tok)
	case ElementNone, ElementScript, ElementStyle, ElementOther, ElementPre:
	case ElementUl, ElementOl:
		if ctx.ListDepth <= 1 {
			ctx.WriteString("\n")
		}
	case ElementP, ElementBr, ElementHr:
		ctx.WriteString("\n")
	case ElementLi:
		ctx.WriteString("\n")
		ctx.WriteString(strings.Repeat("\t", max(ctx.ListDepth, 1)))
		ctx.WriteString("- ")
	default:
		panic(fmt.Errorf("%w: open %s", ErrUnhandledElement, kind))
	}
}

// WriteClose renders a closing tag.
func (w PlainTextWriter) WriteClose(ctx *RenderContext, tok Token) {
	switch kind := ctx.Current.Element; kind {
	case ElementInvalid:
		w.WriteText(ctx, tok)
	case ElementNone, ElementOther, ElementScript, ElementStyle, ElementPre,
		ElementBr, ElementHr, ElementLi:
	case ElementUl, ElementOl:
		if ctx.ListDepth <= 1 {
			ctx.WriteString("\n")
		}
	case ElementP:
		ctx.WriteString("\n")
	default:
		panic(fmt.Errorf("%w: close %s", ErrUnhandledElement, kind))
	}
}

// WriteText renders text, entities and literal malformed markup.
//
// Entities are decoded. Text directly after an opening pre drops one
// leading line break, and text inside pre is copied verbatim. Inside any
// other element whitespace runs collapse to one space, and leading
// whitespace is dropped at the start of a line or of a list item. Outside
// all elements text is copied verbatim unless it follows a tag, in which
// case it is joined to the preceding output without doubling whitespace.
func (w PlainTextWriter) WriteText(ctx *RenderContext, tok Token) {
	if tok.Kind == TokenEntity {
		ctx.WriteString(DecodeEntity(tok.Text))
		return
	}

	if ctx.Previous.isOpenOf(ElementPre) {
		ctx.WriteString(trimLeadingLineBreak(tok.Text))
		return
	}

	if ctx.InPre() {
		ctx.WriteString(tok.Text)
		return
	}

	if ctx.Element.IsResolvable() {
		text := ReduceWhitespace(tok.Text)
		if ctx.endsOnNewline() || isFirstInListItem(ctx, tok) {
			text = strings.TrimLeftFunc(text, unicode.IsSpace)
		}
		ctx.WriteString(text)
		return
	}

	switch {
	case !ctx.Previous.Element.IsResolvable():
		ctx.WriteString(tok.Text)
	case ctx.endsOnSpace():
		ctx.WriteString(strings.TrimLeftFunc(tok.Text, unicode.IsSpace))
	default:
		ctx.WriteString(ReduceWhitespace(tok.Text))
	}
}

// isFirstInListItem reports whether tok is the first text inside an li.
func isFirstInListItem(ctx *RenderContext, tok Token) bool {
	return ctx.Previous.isOpenOf(ElementLi) && tok.Kind == TokenText
}
