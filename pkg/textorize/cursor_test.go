package textorize

import "testing"

func TestCursor_Advance(t *testing.T) {
	t.Parallel()

	c := NewCursor("12é")
	for _, want := range []rune{'1', '2', 'é', eof, eof} {
		if got := c.Advance(); got != want {
			t.Errorf("Advance() = %q, want %q", got, want)
		}
	}
	if !c.AtEnd() {
		t.Error("AtEnd() = false after consuming all runes")
	}
}

func TestCursor_AdvanceN(t *testing.T) {
	t.Parallel()

	c := NewCursor("abé")
	if got := c.AdvanceN(2); got != 'b' {
		t.Errorf("AdvanceN(2) = %q, want 'b'", got)
	}
	if got := c.AdvanceN(5); got != eof || c.Pos() != 2 {
		t.Errorf("AdvanceN(5) past end = %q at %d, want eof at 2", got, c.Pos())
	}
	if got := c.AdvanceN(1); got != 'é' || !c.AtEnd() {
		t.Errorf("AdvanceN(1) = %q, want 'é' at end", got)
	}
	if got := c.AdvanceN(1); got != eof {
		t.Errorf("AdvanceN(1) at end = %q, want eof", got)
	}
	if got := c.AdvanceN(0); got != eof || !c.AtEnd() {
		t.Errorf("AdvanceN(0) = %q, want eof without moving", got)
	}
}

func TestCursor_PeekNext(t *testing.T) {
	t.Parallel()

	c := NewCursor("12")
	c.Advance()
	if got := c.PeekNext(); got != '2' {
		t.Errorf("PeekNext() = %q, want '2'", got)
	}
	if c.Pos() != 1 {
		t.Errorf("PeekNext() moved the cursor to %d", c.Pos())
	}
	c.Advance()
	if got := c.PeekNext(); got != eof {
		t.Errorf("PeekNext() at end = %q, want eof", got)
	}
}

func TestCursor_LookAhead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		advance int
		n       int
		want    string
	}{
		{name: "from start", advance: 0, n: 2, want: "12"},
		{name: "till end", advance: 1, n: 2, want: "23"},
		{name: "at end", advance: 3, n: 2, want: ""},
		{name: "out of range", advance: 0, n: 4, want: ""},
		{name: "zero", advance: 0, n: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCursor("123")
			c.AdvanceN(tt.advance)
			if got := c.LookAhead(tt.n); got != tt.want {
				t.Errorf("LookAhead(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestCursor_Backtrack(t *testing.T) {
	t.Parallel()

	c := NewCursor("abcdef")
	c.AdvanceN(2)
	c.start = c.pos
	c.AdvanceN(3)

	if got := c.Backtrack(1); got != eof || c.Pos() != 5 {
		t.Errorf("Backtrack before token start = %q at %d, want eof at 5", got, c.Pos())
	}
	if got := c.Backtrack(6); got != eof || c.Pos() != 5 {
		t.Errorf("Backtrack past cursor = %q at %d, want eof at 5", got, c.Pos())
	}
	if got := c.Backtrack(3); got != 'd' || c.Pos() != 3 {
		t.Errorf("Backtrack(3) = %q at %d, want 'd' at 3", got, c.Pos())
	}

	c.AdvanceN(3)
	if got := c.Backtrack(6); got != eof || c.Pos() != 6 {
		t.Errorf("Backtrack to end of input = %q at %d, want eof at 6", got, c.Pos())
	}
}
