package runner

import (
	"github.com/yaklabco/textorize/pkg/fsutil"
	"github.com/yaklabco/textorize/pkg/source"
	"github.com/yaklabco/textorize/pkg/textdiff"
)

// FileOutcome describes what happened to a single input file.
type FileOutcome struct {
	// Path is the input file path.
	Path string

	// OutputPath is where the text was (or would be) written.
	OutputPath string

	// Format is the format the file was converted as.
	Format source.Format

	// BytesIn is the size of the input.
	BytesIn int

	// BytesOut is the size of the converted text.
	BytesOut int

	// Written is true when the output file was created or replaced.
	Written bool

	// Unchanged is true when the output already held the converted text.
	Unchanged bool

	// Skipped is true for inputs that were not converted, such as binary files.
	Skipped bool

	// Text holds the converted text when Options.Capture is set.
	Text string

	// Diff is the change to the output file when Options.Diff is set. It
	// is nil when the output already holds the converted text.
	Diff *textdiff.Diff

	// Error is set if the file could not be processed.
	Error error

	// Info is the state of the input when it was read.
	Info *fsutil.FileInfo
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files converted without error.
	FilesConverted int

	// FilesWritten is the number of output files created or replaced.
	FilesWritten int

	// FilesUnchanged is the number of outputs that were already up to date.
	FilesUnchanged int

	// FilesSkipped is the number of files that were not converted.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BytesIn is the total size of converted inputs.
	BytesIn int64

	// BytesOut is the total size of produced text.
	BytesOut int64

	// ByFormat counts converted files per input format.
	ByFormat map[source.Format]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		ByFormat: make(map[source.Format]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.add(outcome)
}

func (s *Stats) add(outcome FileOutcome) {
	switch {
	case outcome.Error != nil:
		s.FilesErrored++
		return
	case outcome.Skipped:
		s.FilesSkipped++
		return
	}

	s.FilesConverted++
	s.BytesIn += int64(outcome.BytesIn)
	s.BytesOut += int64(outcome.BytesOut)
	if s.ByFormat == nil {
		s.ByFormat = make(map[source.Format]int)
	}
	s.ByFormat[outcome.Format]++

	if outcome.Written {
		s.FilesWritten++
	}
	if outcome.Unchanged {
		s.FilesUnchanged++
	}
}
