// Package reporter writes conversion run results in several formats.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/textorize/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// relativize rewrites the paths of an outcome relative to workDir.
func relativize(o runner.FileOutcome, workDir string) runner.FileOutcome {
	o.Path = relPath(o.Path, workDir)
	o.OutputPath = relPath(o.OutputPath, workDir)
	return o
}

// relPath returns path relative to workDir, or path unchanged when it is
// outside workDir or either is empty.
func relPath(path, workDir string) string {
	if path == "" || workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

// failedCount returns the number of failed files in result.
func failedCount(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesErrored
}
