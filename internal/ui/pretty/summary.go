package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/textorize/pkg/runner"
	"github.com/yaklabco/textorize/pkg/source"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 3 files (2 written, 1 unchanged), 1 failed, 12.0 KiB -> 3.1 KiB".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to convert") + "\n"
	}

	var detail []string
	if stats.FilesWritten > 0 {
		detail = append(detail, s.Written.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		detail = append(detail, s.Unchanged.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}

	head := fmt.Sprintf("Converted %d %s", stats.FilesConverted, plural(stats.FilesConverted))
	if stats.FilesErrored == 0 {
		head = s.Success.Render(head)
	}
	if len(detail) > 0 {
		head += " (" + strings.Join(detail, ", ") + ")"
	}

	parts := []string{head}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.FilesConverted > 0 {
		parts = append(parts, s.Dim.Render(FormatBytes(stats.BytesIn)+" -> "+FormatBytes(stats.BytesOut)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	line := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	line("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	line("Files converted", s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)))
	if stats.FilesWritten > 0 {
		line("Files written", s.Written.Render(strconv.Itoa(stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		line("Files unchanged", s.Unchanged.Render(strconv.Itoa(stats.FilesUnchanged)))
	}
	if stats.FilesSkipped > 0 {
		line("Files skipped", s.Skipped.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		line("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	line("Bytes in", s.SummaryValue.Render(FormatBytes(stats.BytesIn)))
	line("Bytes out", s.SummaryValue.Render(FormatBytes(stats.BytesOut)))

	formats := make([]source.Format, 0, len(stats.ByFormat))
	for f := range stats.ByFormat {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	for _, f := range formats {
		line("  "+f.String(), s.Format.Render(strconv.Itoa(stats.ByFormat[f])))
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Conversion failed for some files"))
	} else {
		builder.WriteString(s.Success.Render("Conversion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
