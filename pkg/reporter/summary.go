package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/textorize/internal/ui/pretty"
	"github.com/yaklabco/textorize/pkg/runner"
	"github.com/yaklabco/textorize/pkg/source"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 80
	formatColWidth    = 12
	fileColWidth      = 46
	numColWidth       = 7
	bytesColWidth     = 11
	maxFilePathLength = 44
	largestFilesLimit = 10
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// formatTotals aggregates converted files of one format.
type formatTotals struct {
	format   source.Format
	files    int
	bytesIn  int64
	bytesOut int64
}

// SummaryReporter writes aggregated tables instead of per-file lines.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to convert."))
		return 0, nil
	}

	r.renderFormatTable(result)
	fmt.Fprintln(r.bw)
	r.renderLargestFiles(result)
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return failedCount(result), nil
}

func (r *SummaryReporter) renderFormatTable(result *runner.Result) {
	byFormat := make(map[source.Format]*formatTotals)
	for _, file := range result.Files {
		if file.Error != nil || file.Skipped {
			continue
		}
		totals, ok := byFormat[file.Format]
		if !ok {
			totals = &formatTotals{format: file.Format}
			byFormat[file.Format] = totals
		}
		totals.files++
		totals.bytesIn += int64(file.BytesIn)
		totals.bytesOut += int64(file.BytesOut)
	}
	if len(byFormat) == 0 {
		return
	}

	rows := make([]*formatTotals, 0, len(byFormat))
	for _, totals := range byFormat {
		rows = append(rows, totals)
	}
	slices.SortFunc(rows, func(a, b *formatTotals) int {
		return cmp.Or(cmp.Compare(b.files, a.files), cmp.Compare(a.format, b.format))
	})

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Formats"))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
	fmt.Fprintf(r.bw, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Format", formatColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
		r.styles.TableHeader.Render(padLeft("In", bytesColWidth)),
		r.styles.TableHeader.Render(padLeft("Out", bytesColWidth)),
		r.styles.TableHeader.Render(padLeft("Kept", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, row := range rows {
		fmt.Fprintf(r.bw, "%s %s %s %s %s\n",
			r.styles.Format.Render(padRight(row.format.String(), formatColWidth)),
			padLeft(strconv.Itoa(row.files), numColWidth),
			padLeft(pretty.FormatBytes(row.bytesIn), bytesColWidth),
			padLeft(pretty.FormatBytes(row.bytesOut), bytesColWidth),
			padLeft(ratio(row.bytesOut, row.bytesIn), numColWidth),
		)
	}
}

func (r *SummaryReporter) renderLargestFiles(result *runner.Result) {
	files := slices.Clone(result.Files)
	files = slices.DeleteFunc(files, func(f runner.FileOutcome) bool {
		return f.Error != nil || f.Skipped
	})
	if len(files) == 0 {
		return
	}
	slices.SortStableFunc(files, func(a, b runner.FileOutcome) int {
		return cmp.Compare(b.BytesIn, a.BytesIn)
	})
	files = files[:min(len(files), largestFilesLimit)]

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Largest Inputs"))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("In", bytesColWidth)),
		r.styles.TableHeader.Render(padLeft("Out", bytesColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := relPath(file.Path, r.opts.WorkingDir)
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.styles.FilePath.Render(padRight(path, fileColWidth)),
			padLeft(pretty.FormatBytes(int64(file.BytesIn)), bytesColWidth),
			padLeft(pretty.FormatBytes(int64(file.BytesOut)), bytesColWidth),
		)
	}
}

// ratio formats out as a percentage of in.
func ratio(out, in int64) string {
	if in == 0 {
		return "-"
	}
	return strconv.FormatFloat(float64(out)*100/float64(in), 'f', 0, 64) + "%"
}
