package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
	defaultLoggerMu   sync.RWMutex
)

// Options configures a logger created with NewWithOptions.
type Options struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string

	// JSON switches to one JSON object per line.
	JSON bool

	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer

	// Prefix is printed before every message.
	Prefix string
}

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLoggerMu.Lock()
		if defaultLogger == nil {
			defaultLogger = New("info")
		}
		defaultLoggerMu.Unlock()
	})

	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// New creates a stderr logger with the specified level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions creates a logger from opts.
func NewWithOptions(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	logOpts := log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          opts.Prefix,
	}
	if opts.JSON {
		logOpts.Formatter = log.JSONFormatter
		logOpts.ReportTimestamp = true
	}

	logger := log.NewWithOptions(w, logOpts)
	setLoggerLevel(logger, opts.Level)

	return logger
}

// ParseLevel maps a level name to a log.Level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func setLoggerLevel(logger *log.Logger, level string) {
	logger.SetLevel(ParseLevel(level))
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	getDefaultLogger()

	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	setLoggerLevel(getDefaultLogger(), level)
}

// NewInteractive creates an info-level logger for command output shown
// directly to the user, such as the init and version commands.
func NewInteractive(w io.Writer) *log.Logger {
	return NewWithOptions(Options{Level: "info", Writer: w})
}
