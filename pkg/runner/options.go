// Package runner provides multi-file conversion orchestration.
package runner

import (
	"time"

	"github.com/yaklabco/textorize/pkg/config"
	"github.com/yaklabco/textorize/pkg/source"
)

// Options controls multi-file conversion behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) picked up
	// when walking directories. Defaults to config.DefaultExtensions().
	// Files named explicitly in Paths are converted regardless.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Format forces the input format. FormatAuto detects it per file.
	Format source.Format

	// MaxFileSize is the largest input converted, in bytes.
	MaxFileSize int64

	// OutputDir places outputs below this directory instead of next to the input.
	OutputDir string

	// OutputExt is the extension of written text files.
	OutputExt string

	// DryRun converts without writing.
	DryRun bool

	// Diff computes FileOutcome.Diff against the current output file.
	Diff bool

	// Capture keeps the converted text in FileOutcome.Text and skips writing.
	Capture bool

	// Debounce is how long Watch waits for a file to settle.
	Debounce time.Duration
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	format, err := source.ParseFormat(string(cfg.Format))
	if err != nil {
		format = source.FormatAuto
	}

	return Options{
		Paths:        paths,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Format:       format,
		MaxFileSize:  cfg.MaxFileSize,
		OutputDir:    cfg.Output.Dir,
		OutputExt:    cfg.Output.Extension,
		DryRun:       cfg.DryRun,
		Diff:         cfg.Report == config.ReportDiff,
		Capture:      cfg.Stdout,
		Debounce:     cfg.Watch.Debounce,
	}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveDebounce returns the watch debounce, defaulting if unset.
func (o Options) effectiveDebounce() time.Duration {
	if o.Debounce <= 0 {
		return config.DefaultDebounce
	}
	return o.Debounce
}
