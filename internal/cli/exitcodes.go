package cli

import (
	"errors"

	"github.com/yaklabco/textorize/internal/configloader"
	"github.com/yaklabco/textorize/pkg/runner"
)

// Exit codes for textorize.
const (
	// ExitSuccess indicates every file converted.
	ExitSuccess = 0

	// ExitConversionFailed indicates the run completed but some files failed.
	ExitConversionFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrConversionFailed is returned when at least one file failed to convert.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrInvalidUsage is returned for flag values that cannot be used.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig is returned when configuration cannot be loaded.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitConversionFailed
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionFailed
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, runner.ErrReadFailure), errors.Is(err, runner.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
