package textorize

import (
	"strings"
	"unicode"
)

// ElementKind identifies the HTML element a tag refers to. Only the
// elements that affect text layout are distinguished; every other name
// classifies as ElementOther.
type ElementKind int

// Element kinds.
const (
	// ElementNone marks tokens that are not tags.
	ElementNone ElementKind = iota
	// ElementInvalid marks malformed tag text that is rendered literally.
	ElementInvalid
	ElementP
	ElementBr
	ElementUl
	ElementOl
	ElementLi
	ElementHr
	ElementPre
	ElementStyle
	ElementScript
	ElementOther
)

// String returns the lowercase tag name of the element kind.
func (k ElementKind) String() string {
	switch k {
	case ElementNone:
		return "none"
	case ElementInvalid:
		return "invalid"
	case ElementP:
		return "p"
	case ElementBr:
		return "br"
	case ElementUl:
		return "ul"
	case ElementOl:
		return "ol"
	case ElementLi:
		return "li"
	case ElementHr:
		return "hr"
	case ElementPre:
		return "pre"
	case ElementStyle:
		return "style"
	case ElementScript:
		return "script"
	case ElementOther:
		return "other"
	default:
		return "unknown"
	}
}

// IsResolvable reports whether the kind names an actual element, that is,
// neither ElementNone nor ElementInvalid.
func (k ElementKind) IsResolvable() bool {
	return k != ElementNone && k != ElementInvalid
}

// IsList reports whether the kind opens a list.
func (k ElementKind) IsList() bool {
	return k == ElementUl || k == ElementOl
}

// knownElements maps recognized uppercase tag names to their kinds.
var knownElements = map[string]ElementKind{
	"P":      ElementP,
	"BR":     ElementBr,
	"UL":     ElementUl,
	"OL":     ElementOl,
	"LI":     ElementLi,
	"HR":     ElementHr,
	"PRE":    ElementPre,
	"STYLE":  ElementStyle,
	"SCRIPT": ElementScript,
}

// maxNameRunes bounds how much of a tag name is inspected: the longest
// recognized name plus one delimiter.
var maxNameRunes = len("SCRIPT") + 1

// Classify determines the element kind of complete tag text such as
// "<p>", "</ UL >" or "<br/>". Text shorter than three bytes or not
// starting with '<' is ElementNone. A name starting with a digit is
// ElementInvalid. Names are compared case-insensitively and only the
// first few runes are examined, so arbitrarily long names are cheap.
func Classify(tag string) ElementKind {
	if len(tag) < 3 || tag[0] != '<' {
		return ElementNone
	}

	rest := strings.TrimLeftFunc(tag[1:], unicode.IsSpace)
	if strings.HasPrefix(rest, "/") {
		rest = strings.TrimLeftFunc(rest[1:], unicode.IsSpace)
	}

	var (
		name  strings.Builder
		runes int
	)
	for i, r := range rest {
		if unicode.IsSpace(r) || r == '/' || r == '>' || runes == maxNameRunes {
			break
		}
		if i == 0 && unicode.IsDigit(r) {
			return ElementInvalid
		}
		name.WriteRune(unicode.ToUpper(r))
		runes++
	}

	if kind, ok := knownElements[name.String()]; ok {
		return kind
	}
	return ElementOther
}
