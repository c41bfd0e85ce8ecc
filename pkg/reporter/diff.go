package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/textorize/internal/ui/pretty"
	"github.com/yaklabco/textorize/pkg/runner"
	"github.com/yaklabco/textorize/pkg/textdiff"
)

// DiffReporter writes the change each conversion makes to its output file
// as a git-style unified diff.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, added, removed int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report cancelled: %w", err)
		}

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(relPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if !file.Diff.HasChanges() {
			continue
		}

		files++
		added += file.Diff.Added
		removed += file.Diff.Removed
		r.writeDiff(file.Diff)
	}

	if r.opts.ShowSummary {
		if files == 0 {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No changes."))
		} else {
			r.writeSummary(files, added, removed)
		}
	}

	return failedCount(result), nil
}

func (r *DiffReporter) writeDiff(d *textdiff.Diff) {
	path := relPath(d.Path, r.opts.WorkingDir)
	path = strings.TrimPrefix(path, "/")

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, h := range d.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(h.Header()))
		for _, line := range h.Lines {
			fmt.Fprintln(r.bw, r.lineStyle(line.Kind).Render(line.String()))
		}
	}

	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) lineStyle(kind textdiff.LineKind) lipgloss.Style {
	switch kind {
	case textdiff.Added:
		return r.styles.DiffAdd
	case textdiff.Removed:
		return r.styles.DiffRemove
	default:
		return r.styles.DiffContext
	}
}

// writeSummary writes a "N files changed, X insertions(+), Y deletions(-)" line.
func (r *DiffReporter) writeSummary(files, added, removed int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}
	if added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", added, plural(added, "insertion", "insertions"))))
	}
	if removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", removed, plural(removed, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
