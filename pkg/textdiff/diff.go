// Package textdiff computes line-based unified diffs between the text
// already stored in an output file and freshly converted text.
package textdiff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// LineKind tells whether a diff line is kept, added or removed.
type LineKind int

const (
	// Context is an unchanged line.
	Context LineKind = iota

	// Added is a line only in the new text.
	Added

	// Removed is a line only in the old text.
	Removed
)

// prefix returns the unified diff marker for the kind.
func (k LineKind) prefix() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk.
type Line struct {
	Kind LineKind
	Text string
}

// String returns the line with its unified diff marker.
func (l Line) String() string {
	return l.Kind.prefix() + l.Text
}

// Hunk is a run of changes with surrounding context. Start lines are
// 1-based; a count of zero means the hunk is empty on that side.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Diff is the set of hunks turning the old text of a file into the new.
type Diff struct {
	// Path names the file in headers.
	Path string

	Hunks []Hunk

	// Added and Removed count changed lines over all hunks.
	Added   int
	Removed int
}

// Compute returns the diff from oldText to newText, or nil when both hold
// the same lines.
func Compute(path, oldText, newText string) *Diff {
	oldLines, newLines := splitLines(oldText), splitLines(newText)
	ops := editScript(oldLines, newLines)

	d := &Diff{Path: path}
	for _, op := range ops {
		switch op.kind {
		case Added:
			d.Added++
		case Removed:
			d.Removed++
		}
	}
	if d.Added == 0 && d.Removed == 0 {
		return nil
	}

	d.Hunks = groupHunks(ops)
	return d
}

// HasChanges reports whether the diff changes any line.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Unified returns the diff in git's unified format, headers included.
func (d *Diff) Unified() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteString(l.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// splitLines splits text into lines. A final line break does not start an
// empty last line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// op is one step of the edit script. oldLine and newLine are the 1-based
// line numbers the step is at before it is applied.
type op struct {
	kind    LineKind
	text    string
	oldLine int
	newLine int
}

// editScript returns the steps turning a into b, built from a longest
// common subsequence table. Removals are emitted before additions at each
// change point.
func editScript(a, b []string) []op {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]op, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, op{kind: Context, text: a[i], oldLine: i + 1, newLine: j + 1})
			i++
			j++
		case j == len(b) || (i < len(a) && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, op{kind: Removed, text: a[i], oldLine: i + 1, newLine: j + 1})
			i++
		default:
			ops = append(ops, op{kind: Added, text: b[j], oldLine: i + 1, newLine: j + 1})
			j++
		}
	}
	return ops
}

// groupHunks cuts the edit script into hunks. Changes separated by no more
// than twice the context length share a hunk.
func groupHunks(ops []op) []Hunk {
	var hunks []Hunk

	for start := 0; start < len(ops); {
		first := nextChange(ops, start)
		if first < 0 {
			break
		}

		// Extend over changes whose gap of context lines is small enough.
		last := first
		for k := first + 1; k < len(ops); k++ {
			if ops[k].kind == Context {
				continue
			}
			if k-last-1 > 2*contextLines {
				break
			}
			last = k
		}

		from := max(first-contextLines, 0)
		to := min(last+contextLines+1, len(ops))
		hunks = append(hunks, buildHunk(ops[from:to]))
		start = to
	}

	return hunks
}

// nextChange returns the index of the first non-context op at or after
// start, or -1.
func nextChange(ops []op, start int) int {
	for k := start; k < len(ops); k++ {
		if ops[k].kind != Context {
			return k
		}
	}
	return -1
}

func buildHunk(ops []op) Hunk {
	h := Hunk{
		OldStart: ops[0].oldLine,
		NewStart: ops[0].newLine,
		Lines:    make([]Line, 0, len(ops)),
	}
	for _, o := range ops {
		h.Lines = append(h.Lines, Line{Kind: o.kind, Text: o.text})
		if o.kind != Added {
			h.OldCount++
		}
		if o.kind != Removed {
			h.NewCount++
		}
	}

	// An empty side starts before its first line, as in diff(1).
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
	return h
}
