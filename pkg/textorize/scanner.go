package textorize

import (
	"strings"
	"unicode"
)

// Scanner splits HTML-ish text into tokens. It never fails: malformed
// markup comes back as text tokens classified ElementInvalid. The scanner
// only reads forward, so total work is linear in the input length.
type Scanner struct {
	cur *Cursor
}

// NewScanner returns a scanner over src.
func NewScanner(src string) *Scanner {
	return &Scanner{cur: NewCursor(src)}
}

// Next returns the next token. Once the input is exhausted it returns a
// TokenEOF token on every call.
func (s *Scanner) Next() Token {
	c := s.cur
	if c.AtEnd() {
		return Token{Kind: TokenEOF, Depth: c.depth}
	}

	c.start = c.pos

	switch c.Advance() {
	case '&':
		if tok, ok := s.scanEntity(); ok {
			return tok
		}
	case '<':
		if c.AtEnd() {
			return s.emit(TokenText, ElementInvalid)
		}
		return s.scanTag()
	}

	return s.scanText()
}

// scanText consumes plain text up to the next '<' or '&'.
func (s *Scanner) scanText() Token {
	s.cur.skipTo('<', '&')
	return s.emit(TokenText, ElementNone)
}

// scanEntity is called after '&'. It recognizes "&name;" and "&#digits;"
// with optional whitespace before the ';'. On failure the cursor is left
// after the alphanumeric run so the text folds into the following text.
func (s *Scanner) scanEntity() (Token, bool) {
	c := s.cur

	next := c.PeekNext()
	if !unicode.IsLetter(next) && next != '#' {
		return Token{}, false
	}
	c.Advance()

	if !isAlnum(c.PeekNext()) {
		return Token{}, false
	}
	for isAlnum(c.PeekNext()) {
		c.Advance()
	}

	if c.PeekNext() == ';' {
		c.Advance()
		return s.emit(TokenEntity, ElementNone), true
	}

	runEnd := c.Pos()
	c.skipSpace()
	if c.PeekNext() == ';' {
		c.Advance()
		return s.emit(TokenEntity, ElementNone), true
	}

	c.Backtrack(runEnd)
	return Token{}, false
}

// scanTag is called after the opening '<' has been consumed.
func (s *Scanner) scanTag() Token {
	c := s.cur

	c.skipSpace()
	kind := TokenOpenTag
	if c.PeekNext() == '/' {
		c.Advance()
		kind = TokenCloseTag
	}

	var (
		inQuote      bool
		lastNonSpace rune
	)
	for !c.AtEnd() && (c.peekNextUnsafe() != '>' || inQuote) {
		r := c.peekNextUnsafe()
		if r == '<' && !inQuote {
			// A new tag starts before this one ended. The consumed text is
			// literal and the next call resumes at the new '<'.
			return s.emit(TokenText, ElementInvalid)
		}
		c.Advance()
		if !unicode.IsSpace(r) {
			lastNonSpace = r
		}
		if r == '"' {
			inQuote = !inQuote
		}
	}

	if lastNonSpace == '/' {
		kind = TokenSelfClosingTag
	}

	if c.AtEnd() {
		return s.emit(kind, ElementInvalid)
	}

	c.Advance() // '>'
	tok := s.emit(kind, Classify(c.span()))
	if tok.Kind == TokenOpenTag && (tok.Element == ElementScript || tok.Element == ElementStyle) {
		s.skipRaw(tok.Element)
	}
	return tok
}

// emit builds a token from the current span and updates the block depth.
func (s *Scanner) emit(kind TokenKind, elem ElementKind) Token {
	c := s.cur
	tok := Token{Kind: kind, Element: elem, Text: c.span()}

	switch {
	case kind == TokenOpenTag && elem.IsResolvable():
		tok.Depth = c.depth
		c.depth++
	case kind == TokenCloseTag && elem.IsResolvable():
		c.depth--
		tok.Depth = c.depth
	default:
		tok.Depth = c.depth
	}
	return tok
}

// skipRaw advances past the body of a script or style element, leaving
// the cursor on the '<' of its closing tag or at the end of input. Quoted
// strings are honored inside scripts only. Quotes inside a "//" comment do
// not open a string, and the comment still ends at a closing tag.
func (s *Scanner) skipRaw(elem ElementKind) {
	c := s.cur
	name := elem.String()
	closeLen := len("</" + name + ">")
	trackQuotes := elem == ElementScript

	var (
		quote   rune
		comment bool
	)
	for !c.AtEnd() {
		if c.LookAhead(closeLen) == "" {
			c.skipTo('<')
			return
		}

		r := c.peekNextUnsafe()
		switch {
		case quote != 0:
			switch r {
			case '\\':
				c.Advance()
			case quote, '\n':
				quote = 0
			}
		case r == '<' && isClosingTag(c.Rest(), name):
			return
		case comment:
			comment = r != '\n'
		case trackQuotes && (r == '"' || r == '\''):
			quote = r
		case trackQuotes && r == '/' && c.LookAhead(2) == "//":
			comment = true
			c.Advance()
		}
		c.Advance()
	}
}

// isClosingTag reports whether s begins with a closing tag for name,
// allowing whitespace around the '/' and any letter case.
func isClosingTag(s, name string) bool {
	if !strings.HasPrefix(s, "<") {
		return false
	}
	s = strings.TrimLeftFunc(s[1:], unicode.IsSpace)
	if !strings.HasPrefix(s, "/") {
		return false
	}
	s = strings.TrimLeftFunc(s[1:], unicode.IsSpace)
	if len(s) < len(name) || !strings.EqualFold(s[:len(name)], name) {
		return false
	}
	s = s[len(name):]
	if s == "" {
		return true
	}
	r := rune(s[0])
	return r == '>' || r == '/' || unicode.IsSpace(r)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
