package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/textorize/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, FORMAT, IN, OUT, STATUS
	minFileWidth     = 20
	formatWidth      = 8
	sizeWidth        = 10
	statusWidth      = 9
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the outcome table.
type TableRow struct {
	File     string
	Format   string
	BytesIn  string
	BytesOut string
	Status   string
	Failed   bool
}

// TableFormatter formats outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// OutcomeToTableRow converts a file outcome to a table row.
func OutcomeToTableRow(o runner.FileOutcome) TableRow {
	row := TableRow{
		File:   o.Path,
		Format: o.Format.String(),
		Status: Status(o),
		Failed: o.Error != nil,
	}
	if o.Error == nil && !o.Skipped {
		row.BytesIn = FormatBytes(int64(o.BytesIn))
		row.BytesOut = FormatBytes(int64(o.BytesOut))
	}
	return row
}

// FormatTable formats rows followed by a one-line total.
func (t *TableFormatter) FormatTable(rows []TableRow, stats runner.Stats) string {
	if len(rows) == 0 {
		return ""
	}

	fileWidth := t.fileWidth(rows)
	totalWidth := fileWidth + formatWidth + 2*sizeWidth + statusWidth + tablePadding*tableColumnCount

	var builder strings.Builder
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)) + "\n")
	builder.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s ",
		fileWidth, "FILE", formatWidth, "FORMAT", sizeWidth, "IN", sizeWidth, "OUT", statusWidth, "STATUS")) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, totalWidth)) + "\n")

	for _, row := range rows {
		content := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s ",
			fileWidth, truncateFilePath(row.File, fileWidth),
			formatWidth, truncateString(row.Format, formatWidth),
			sizeWidth, row.BytesIn,
			sizeWidth, row.BytesOut,
			statusWidth, row.Status,
		)
		if row.Failed {
			content = t.styles.TableErrorRow.Render(content)
		}
		builder.WriteString(content + "\n")
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)) + "\n")
	builder.WriteString(" " + t.styles.FormatSummaryOneLine(stats))

	return builder.String()
}

// fileWidth fits the FILE column to its content and the terminal width.
func (t *TableFormatter) fileWidth(rows []TableRow) int {
	width := minFileWidth
	for _, row := range rows {
		width = max(width, len(row.File))
	}

	fixed := formatWidth + 2*sizeWidth + statusWidth + tablePadding*tableColumnCount
	if width+fixed > t.termWidth {
		width = max(minFileWidth, t.termWidth-fixed)
	}
	return width
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
