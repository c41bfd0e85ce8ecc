package textorize

import "fmt"

// TokenKind is the lexical category of a Token.
type TokenKind int

// Token kinds.
const (
	// TokenNone is the zero kind, used for the "no previous token" state.
	TokenNone TokenKind = iota
	TokenText
	TokenEntity
	TokenOpenTag
	TokenCloseTag
	TokenSelfClosingTag
	TokenEOF
)

// String returns a readable name for the kind.
func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenText:
		return "Text"
	case TokenEntity:
		return "Entity"
	case TokenOpenTag:
		return "OpenTag"
	case TokenCloseTag:
		return "CloseTag"
	case TokenSelfClosingTag:
		return "SelfClosingTag"
	case TokenEOF:
		return "EOF"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one lexical unit produced by the Scanner.
type Token struct {
	Kind    TokenKind
	Element ElementKind

	// Text is the exact source text of the token.
	Text string

	// Depth is the block depth recorded by the scanner. Opening tags carry
	// the depth before the increment, closing tags the depth after the
	// decrement, so matched pairs share a depth.
	Depth int
}

// String implements fmt.Stringer for debugging output.
func (t Token) String() string {
	return fmt.Sprintf("%s(%s,%d,%q)", t.Kind, t.Element, t.Depth, t.Text)
}

// isOpenOf reports whether t is an opening tag of kind.
func (t Token) isOpenOf(kind ElementKind) bool {
	return t.Kind == TokenOpenTag && t.Element == kind
}
