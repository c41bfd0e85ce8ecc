package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/textorize/internal/ui/pretty"
	"github.com/yaklabco/textorize/pkg/runner"
	"github.com/yaklabco/textorize/pkg/source"
)

func sampleStats() runner.Stats {
	return runner.Stats{
		FilesDiscovered: 4,
		FilesConverted:  3,
		FilesWritten:    2,
		FilesUnchanged:  1,
		FilesErrored:    1,
		BytesIn:         4096,
		BytesOut:        300,
		ByFormat:        map[source.Format]int{source.FormatHTML: 2, source.FormatMarkdown: 1},
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t,
		"Converted 3 files (2 written, 1 unchanged), 1 failed, 4.0 KiB -> 300 B\n",
		styles.FormatSummaryOneLine(sampleStats()))

	assert.Equal(t,
		"Converted 1 file (1 written), 100 B -> 10 B\n",
		styles.FormatSummaryOneLine(runner.Stats{
			FilesDiscovered: 1, FilesConverted: 1, FilesWritten: 1, BytesIn: 100, BytesOut: 10,
		}))

	assert.Equal(t, "No files to convert\n", styles.FormatSummaryOneLine(runner.Stats{}))
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	result := pretty.NewStyles(false).FormatSummary(sampleStats())

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files converted:")
	assert.Contains(t, result, "Files failed:")
	assert.NotContains(t, result, "Files skipped:")
	assert.Contains(t, result, "4.0 KiB")
	assert.Contains(t, result, "Conversion failed")
	assert.Less(t, strings.Index(result, "html"), strings.Index(result, "markdown"))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.FormatBytes(tt.n))
	}
}

func TestFormatOutcome(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		outcome runner.FileOutcome
		want    []string
	}{
		{
			name:    "written",
			outcome: runner.FileOutcome{Path: "a.html", OutputPath: "a.txt", Format: source.FormatHTML, BytesIn: 2048, BytesOut: 12, Written: true},
			want:    []string{"written", "a.html -> a.txt", "html", "2.0 KiB -> 12 B"},
		},
		{
			name:    "dry run",
			outcome: runner.FileOutcome{Path: "a.md", OutputPath: "a.txt", Format: source.FormatMarkdown},
			want:    []string{"dry-run", "a.md -> a.txt", "markdown"},
		},
		{
			name:    "failed",
			outcome: runner.FileOutcome{Path: "b.html", Error: errors.New("boom")},
			want:    []string{"failed", "b.html: boom"},
		},
		{
			name:    "skipped",
			outcome: runner.FileOutcome{Path: "c.html", Skipped: true},
			want:    []string{"skipped", "(binary)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := styles.FormatOutcome(tt.outcome)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			assert.True(t, strings.HasSuffix(got, "\n"))
		})
	}
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	tf := pretty.NewTableFormatter(pretty.NewStyles(false), 60)
	rows := []pretty.TableRow{
		pretty.OutcomeToTableRow(runner.FileOutcome{
			Path: "docs/a/very/long/path/to/some/deeply/nested/page.html", Format: source.FormatHTML,
			BytesIn: 10, BytesOut: 5, Written: true, OutputPath: "x.txt",
		}),
		pretty.OutcomeToTableRow(runner.FileOutcome{Path: "bad.html", Error: errors.New("x")}),
	}

	got := tf.FormatTable(rows, sampleStats())
	lines := strings.Split(got, "\n")

	assert.Contains(t, lines[1], "FILE")
	assert.Contains(t, lines[1], "STATUS")
	assert.Contains(t, got, "...")
	assert.Contains(t, got, "nested/page.html")
	assert.Contains(t, got, "failed")
	assert.Contains(t, got, "Converted 3 files")

	assert.Empty(t, tf.FormatTable(nil, runner.Stats{}))
}
