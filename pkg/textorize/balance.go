package textorize

// stackEntry is an opening tag waiting for its closing tag.
type stackEntry struct {
	Depth int
	Token Token
}

// balancer pairs closing tags with the opening tags on its stack. Pairing
// uses the depths recorded by the scanner, so an unmatched opener is
// closed implicitly by the first closing tag at its depth, and a closing
// tag with nothing open renders on its own.
type balancer struct {
	stack []stackEntry
}

// push records a resolvable opening tag and makes it the enclosing element.
func (b *balancer) push(ctx *RenderContext, tok Token) {
	b.stack = append(b.stack, stackEntry{Depth: tok.Depth, Token: tok})
	ctx.Depth = len(b.stack)
	ctx.Element = tok.Element
}

func (b *balancer) peek() (stackEntry, bool) {
	if len(b.stack) == 0 {
		return stackEntry{}, false
	}
	return b.stack[len(b.stack)-1], true
}

// pop removes the top entry and restores the enclosing element.
func (b *balancer) pop(ctx *RenderContext) stackEntry {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	ctx.Depth = len(b.stack)
	ctx.Element = ElementNone
	if parent, ok := b.peek(); ok {
		ctx.Element = parent.Token.Element
	}
	return top
}

// close renders the closing tag tok. Closing tags that do not name a
// resolvable element never touch the stack.
//
// Stack entries sit at consecutive depths and the scanner stamps a closer
// with the depth of the entry on top, so scanned input only ever takes the
// same-depth branches. The depth branches cover stacks built by hand.
func (b *balancer) close(ctx *RenderContext, w Writer, tok Token) {
	if !tok.Element.IsResolvable() {
		w.WriteClose(ctx, tok)
		return
	}

	for {
		top, ok := b.peek()
		switch {
		case !ok || top.Depth < tok.Depth:
			// Nothing open at this depth.
			w.WriteClose(ctx, tok)
			return
		case top.Depth > tok.Depth:
			// A deeper element was never closed.
			b.pop(ctx)
			w.WriteClose(ctx, top.Token)
		case top.Token.Element == tok.Element:
			b.pop(ctx)
			w.WriteClose(ctx, tok)
			return
		default:
			// Same depth, different element: the opener is orphaned.
			b.pop(ctx)
			w.WriteClose(ctx, top.Token)
			w.WriteClose(ctx, tok)
			return
		}
	}
}
