package textorize

import (
	"unicode"
	"unicode/utf8"
)

// eof is the rune reported by the cursor once the input is exhausted.
const eof rune = 0

// Cursor is a forward-only reader over an input string with bounded
// backtracking. Offsets are byte offsets; reads advance one rune at a time.
type Cursor struct {
	src string

	// pos is the offset of the next unread rune.
	pos int

	// start is the offset where the token currently being scanned began.
	start int

	// depth is the scanner's running block depth.
	depth int
}

// NewCursor returns a cursor positioned at the beginning of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the offset of the next unread rune.
func (c *Cursor) Pos() int { return c.pos }

// AtEnd reports whether every rune has been consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.src) }

// Advance consumes and returns the next rune, or eof at the end of input.
func (c *Cursor) Advance() rune {
	if c.AtEnd() {
		return eof
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
	return r
}

// AdvanceN consumes n runes and returns the last one. When fewer than n
// runes remain it consumes nothing and returns eof.
func (c *Cursor) AdvanceN(n int) rune {
	start := c.pos
	r := eof
	for range n {
		if c.AtEnd() {
			c.pos = start
			return eof
		}
		r = c.Advance()
	}
	return r
}

// PeekNext returns the next rune without consuming it, or eof at the end.
func (c *Cursor) PeekNext() rune {
	if c.AtEnd() {
		return eof
	}
	return c.peekNextUnsafe()
}

// peekNextUnsafe decodes the rune at pos. The caller guarantees !AtEnd.
func (c *Cursor) peekNextUnsafe() rune {
	if b := c.src[c.pos]; b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r
}

// LookAhead returns the next n bytes without consuming them. It returns
// the empty string when fewer than n bytes remain.
func (c *Cursor) LookAhead(n int) string {
	if n < 0 || c.pos+n > len(c.src) {
		return ""
	}
	return c.src[c.pos : c.pos+n]
}

// Rest returns the unread remainder of the input.
func (c *Cursor) Rest() string { return c.src[c.pos:] }

// Backtrack moves the cursor back to pos. The move only happens when pos
// lies within the current token and before the end of input; in that case
// the rune at pos is returned. Otherwise the cursor is unchanged and eof
// is returned.
func (c *Cursor) Backtrack(pos int) rune {
	if pos < c.start || pos > c.pos || pos >= len(c.src) {
		return eof
	}
	c.pos = pos
	return c.peekNextUnsafe()
}

// skipSpace consumes whitespace runes.
func (c *Cursor) skipSpace() {
	for !c.AtEnd() && unicode.IsSpace(c.peekNextUnsafe()) {
		c.Advance()
	}
}

// skipTo advances until the next occurrence of any rune in stops, or the end.
func (c *Cursor) skipTo(stops ...rune) {
	for !c.AtEnd() {
		r := c.peekNextUnsafe()
		for _, s := range stops {
			if r == s {
				return
			}
		}
		c.Advance()
	}
}

// span returns the text of the token being scanned.
func (c *Cursor) span() string { return c.src[c.start:c.pos] }
