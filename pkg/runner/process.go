package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/textorize/internal/logging"
	"github.com/yaklabco/textorize/pkg/fsutil"
	"github.com/yaklabco/textorize/pkg/source"
	"github.com/yaklabco/textorize/pkg/textdiff"
)

// Sentinel errors for per-file failures.
var (
	// ErrReadFailure wraps errors reading an input file.
	ErrReadFailure = errors.New("read failed")

	// ErrConvertFailure wraps errors converting an input file.
	ErrConvertFailure = errors.New("convert failed")

	// ErrWriteFailure wraps errors writing an output file.
	ErrWriteFailure = errors.New("write failed")

	// ErrOutputIsInput is returned when the output path would overwrite the input.
	ErrOutputIsInput = errors.New("output path is the input file")
)

// ProcessFile converts a single file: read, detect the format, convert and
// write the output unless it already holds the same text. DryRun and Capture
// skip the write.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)

	content, info, err := fsutil.ReadFile(ctx, path, opts.MaxFileSize)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrReadFailure, err)
		return outcome
	}
	outcome.Info = info
	outcome.BytesIn = len(content)

	format := opts.Format
	if format == "" || format == source.FormatAuto {
		format = source.Detect(path, content)
	}
	outcome.Format = format

	text, err := r.Renderer.Convert(ctx, format, content)
	if err != nil {
		if errors.Is(err, source.ErrBinaryContent) {
			logger.Debug("skipping binary file")
			outcome.Skipped = true
			return outcome
		}
		outcome.Error = fmt.Errorf("%w: %s: %w", ErrConvertFailure, path, err)
		return outcome
	}
	outcome.BytesOut = len(text)

	if opts.Capture {
		outcome.Text = text
		return outcome
	}

	outcome.OutputPath = r.outputPath(path, opts)
	if outcome.OutputPath == filepath.Clean(path) {
		outcome.Error = fmt.Errorf("%w: %s", ErrOutputIsInput, path)
		return outcome
	}

	if opts.Diff {
		outcome.Diff = diffOutput(outcome.OutputPath, text)
	}

	if opts.DryRun {
		logger.Debug("dry run", logging.FieldOutput, outcome.OutputPath, logging.FieldBytesOut, outcome.BytesOut)
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.OutputPath, []byte(text), fsutil.DefaultFileMode)
	if err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrWriteFailure, err)
		return outcome
	}
	outcome.Written = written
	outcome.Unchanged = !written

	logger.Debug("converted",
		logging.FieldFormat, format,
		logging.FieldOutput, outcome.OutputPath,
		logging.FieldBytesIn, outcome.BytesIn,
		logging.FieldBytesOut, outcome.BytesOut,
		logging.FieldChanged, written)

	return outcome
}

// diffOutput compares the text with what the output file holds now. A
// missing or unreadable output diffs as empty.
func diffOutput(path, text string) *textdiff.Diff {
	current, _ := os.ReadFile(path)
	return textdiff.Compute(path, string(current), text)
}

// outputPath maps an input to its output file. With an output directory
// the input's path relative to the working directory is kept below it.
func (r *Runner) outputPath(path string, opts Options) string {
	if opts.OutputDir == "" {
		return fsutil.OutputPath(filepath.Clean(path), "", opts.OutputExt)
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return fsutil.OutputPath(filepath.Base(path), opts.OutputDir, opts.OutputExt)
	}

	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return fsutil.OutputPath(rel, absUnder(workDir, opts.OutputDir), opts.OutputExt)
}
