package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/textorize/internal/ui/pretty"
	"github.com/yaklabco/textorize/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON report layout changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path     string `json:"path"`
	Output   string `json:"output,omitempty"`
	Format   string `json:"format,omitempty"`
	Status   string `json:"status"`
	BytesIn  int    `json:"bytesIn"`
	BytesOut int    `json:"bytesOut"`
	Text     string `json:"text,omitempty"`
	Error    string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesConverted  int            `json:"filesConverted"`
	FilesWritten    int            `json:"filesWritten"`
	FilesUnchanged  int            `json:"filesUnchanged"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	BytesIn         int64          `json:"bytesIn"`
	BytesOut        int64          `json:"bytesOut"`
	ByFormat        map[string]int `json:"byFormat"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByFormat: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     relPath(file.Path, r.opts.WorkingDir),
			Output:   relPath(file.OutputPath, r.opts.WorkingDir),
			Format:   file.Format.String(),
			Status:   pretty.Status(file),
			BytesIn:  file.BytesIn,
			BytesOut: file.BytesOut,
			Text:     file.Text,
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesConverted = stats.FilesConverted
	output.Summary.FilesWritten = stats.FilesWritten
	output.Summary.FilesUnchanged = stats.FilesUnchanged
	output.Summary.FilesSkipped = stats.FilesSkipped
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.BytesIn = stats.BytesIn
	output.Summary.BytesOut = stats.BytesOut
	for format, n := range stats.ByFormat {
		output.Summary.ByFormat[format.String()] = n
	}

	return output
}
