package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/textorize/pkg/runner"
)

// Status labels used in outcome lines and tables.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusDryRun    = "dry-run"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
	StatusCaptured  = "converted"
)

// Status returns the label describing what happened to a file.
func Status(o runner.FileOutcome) string {
	switch {
	case o.Error != nil:
		return StatusFailed
	case o.Skipped:
		return StatusSkipped
	case o.Written:
		return StatusWritten
	case o.Unchanged:
		return StatusUnchanged
	case o.OutputPath != "":
		return StatusDryRun
	default:
		return StatusCaptured
	}
}

// FormatStatus returns a styled, fixed-width status label.
func (s *Styles) FormatStatus(status string) string {
	padded := fmt.Sprintf("%-9s", status)
	switch status {
	case StatusFailed:
		return s.Error.Render(padded)
	case StatusSkipped:
		return s.Skipped.Render(padded)
	case StatusWritten:
		return s.Written.Render(padded)
	case StatusUnchanged:
		return s.Unchanged.Render(padded)
	default:
		return s.Info.Render(padded)
	}
}

// FormatOutcome formats one file outcome as a line. Paths are shown as
// given; callers relativize them first.
//
//	written    docs/a.html -> docs/a.txt  html  1.2 KiB -> 300 B
func (s *Styles) FormatOutcome(o runner.FileOutcome) string {
	var builder strings.Builder

	builder.WriteString("  ")
	builder.WriteString(s.FormatStatus(Status(o)))
	builder.WriteString("  ")
	builder.WriteString(s.FilePath.Render(o.Path))

	if o.Error != nil {
		builder.WriteString(": " + s.Error.Render(o.Error.Error()) + "\n")
		return builder.String()
	}

	if o.OutputPath != "" {
		builder.WriteString(s.Arrow.Render(" -> ") + o.OutputPath)
	}
	if o.Skipped {
		builder.WriteString(s.Dim.Render("  (binary)") + "\n")
		return builder.String()
	}

	builder.WriteString("  " + s.Format.Render(o.Format.String()))
	builder.WriteString(s.Dim.Render(fmt.Sprintf("  %s -> %s", FormatBytes(int64(o.BytesIn)), FormatBytes(int64(o.BytesOut)))))
	builder.WriteString("\n")

	return builder.String()
}

// FormatBytes formats a byte count with binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for q := n / unit; q >= unit; q /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
