package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textorize/pkg/reporter"
	"github.com/yaklabco/textorize/pkg/runner"
	"github.com/yaklabco/textorize/pkg/source"
	"github.com/yaklabco/textorize/pkg/textdiff"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/docs/a.html", OutputPath: "/work/docs/a.txt", Format: source.FormatHTML,
				BytesIn: 2048, BytesOut: 100, Written: true,
			},
			{
				Path: "/work/docs/b.md", OutputPath: "/work/docs/b.txt", Format: source.FormatMarkdown,
				BytesIn: 300, BytesOut: 120, Unchanged: true,
			},
			{Path: "/work/img.html", Skipped: true},
			{Path: "/work/broken.html", Error: errors.New("read failed")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 4,
			FilesConverted:  2,
			FilesWritten:    1,
			FilesUnchanged:  1,
			FilesSkipped:    1,
			FilesErrored:    1,
			BytesIn:         2348,
			BytesOut:        220,
			ByFormat:        map[source.Format]int{source.FormatHTML: 1, source.FormatMarkdown: 1},
		},
	}
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.TermWidth = 120

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	failed, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), failed
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "case and space", input: " JSON ", want: reporter.FormatJSON},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, reporter.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"text", "table", "json", "summary", "diff"}, reporter.Formats())

	lines := reporter.Describe()
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[4], "diff: "))
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{"", reporter.FormatText, reporter.FormatTable, reporter.FormatJSON, reporter.FormatSummary, reporter.FormatDiff} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
	assert.False(t, reporter.Format("xml").IsValid())
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true, WorkingDir: "/work"}, sampleResult())

	assert.Equal(t, 1, failed)
	assert.Contains(t, out, "written")
	assert.Contains(t, out, "docs/a.html -> docs/a.txt")
	assert.NotContains(t, out, "/work/")
	assert.NotContains(t, out, "b.md", "unchanged files are hidden unless verbose")
	assert.Contains(t, out, "img.html")
	assert.Contains(t, out, "broken.html: read failed")
	assert.Contains(t, out, "Converted 2 files (1 written, 1 unchanged), 1 skipped, 1 failed")
}

func TestTextReporter_Verbose(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatText, Verbose: true}, sampleResult())

	assert.Contains(t, out, "unchanged")
	assert.Contains(t, out, "/work/docs/b.md")
	assert.NotContains(t, out, "Converted", "summary disabled")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, &runner.Result{})
	assert.Zero(t, failed)
	assert.Contains(t, out, "No files to convert.")

	out, _ = report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, nil)
	assert.Contains(t, out, "No files to convert.")
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatTable, WorkingDir: "/work"}, sampleResult())

	assert.Equal(t, 1, failed)
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 3)
	assert.Contains(t, lines[1], "FILE")
	assert.Contains(t, lines[1], "FORMAT")
	assert.Contains(t, out, "docs/a.html")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "failed")
	assert.NotContains(t, out, "b.md")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatJSON, WorkingDir: "/work"}, sampleResult())
	assert.Equal(t, 1, failed)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	require.Len(t, decoded.Files, 4)
	assert.Equal(t, "docs/a.html", decoded.Files[0].Path)
	assert.Equal(t, "docs/a.txt", decoded.Files[0].Output)
	assert.Equal(t, "written", decoded.Files[0].Status)
	assert.Equal(t, "unchanged", decoded.Files[1].Status)
	assert.Equal(t, "skipped", decoded.Files[2].Status)
	assert.Equal(t, "failed", decoded.Files[3].Status)
	assert.Equal(t, "read failed", decoded.Files[3].Error)

	assert.Equal(t, 2, decoded.Summary.FilesConverted)
	assert.Equal(t, int64(2348), decoded.Summary.BytesIn)
	assert.Equal(t, map[string]int{"html": 1, "markdown": 1}, decoded.Summary.ByFormat)
}

func TestJSONReporter_CompactAndCapturedText(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{Path: "-", Format: source.FormatHTML, Text: "\na < b\n", BytesIn: 14, BytesOut: 7}},
		Stats: runner.Stats{FilesDiscovered: 1, FilesConverted: 1},
	}
	out, failed := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, result)

	assert.Zero(t, failed)
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output is one line")
	assert.Contains(t, out, `"text":"\na < b\n"`)
	assert.Contains(t, out, `"status":"converted"`)
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatJSON}, nil)
	assert.Zero(t, failed)
	assert.Contains(t, out, `"files": []`)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatSummary, WorkingDir: "/work"}, sampleResult())

	assert.Equal(t, 1, failed)
	assert.Contains(t, out, "Formats")
	assert.Contains(t, out, "Largest Inputs")
	assert.Less(t, strings.Index(out, "docs/a.html"), strings.Index(out, "docs/b.md"), "largest input first")
	assert.NotContains(t, out, "broken.html")
	assert.Contains(t, out, "5%")
	assert.Contains(t, out, "Conversion failed for some files")
}

func TestSummaryReporter_Empty(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatSummary}, &runner.Result{})
	assert.Zero(t, failed)
	assert.Contains(t, out, "No files to convert.")
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.Files[0].Diff = textdiff.Compute("/work/docs/a.txt", "\nold\n", "\nnew\nline\n")

	out, failed := report(t, reporter.Options{
		Format:      reporter.FormatDiff,
		ShowSummary: true,
		WorkingDir:  "/work",
	}, result)

	assert.Equal(t, 1, failed)
	assert.Contains(t, out, "diff --git a/docs/a.txt b/docs/a.txt\n--- a/docs/a.txt\n+++ b/docs/a.txt\n")
	assert.Contains(t, out, "@@ -1,2 +1,3 @@\n \n-old\n+new\n+line\n")
	assert.Contains(t, out, "broken.html: error: read failed")
	assert.NotContains(t, out, "b.txt")
	assert.True(t, strings.HasSuffix(out, "1 file changed, 2 insertions(+), 1 deletion(-)\n"))
}

func TestDiffReporter_NoChanges(t *testing.T) {
	t.Parallel()

	out, failed := report(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true}, &runner.Result{
		Files: []runner.FileOutcome{{Path: "a.html", OutputPath: "a.txt", Unchanged: true}},
	})

	assert.Zero(t, failed)
	assert.Equal(t, "No changes.\n", out)
}
