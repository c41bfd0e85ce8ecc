// Package config defines the configuration types for textorize.
// These types are plain data; loading and merging live in internal/configloader.
package config

import "time"

// InputFormat selects how input documents are interpreted.
type InputFormat string

const (
	InputAuto     InputFormat = "auto"
	InputHTML     InputFormat = "html"
	InputMarkdown InputFormat = "markdown"
	InputText     InputFormat = "text"
)

// IsValid returns true if the input format is a recognized value.
func (f InputFormat) IsValid() bool {
	switch f {
	case InputAuto, InputHTML, InputMarkdown, InputText:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor used for Markdown input.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is a recognized value.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// ReportFormat specifies how run results are reported.
type ReportFormat string

const (
	ReportText    ReportFormat = "text"
	ReportTable   ReportFormat = "table"
	ReportJSON    ReportFormat = "json"
	ReportSummary ReportFormat = "summary"
	ReportDiff    ReportFormat = "diff"
)

// OutputConfig controls where converted text is written.
type OutputConfig struct {
	// Extension replaces the input file extension (default ".txt").
	Extension string `yaml:"extension"`

	// Dir places outputs below this directory instead of next to the input.
	Dir string `yaml:"dir"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is how long to wait for further events on a file before
	// converting it.
	Debounce time.Duration `yaml:"debounce"`
}

// Config is the root configuration structure for textorize.
type Config struct {
	// Format is the input format ("auto", "html", "markdown" or "text").
	Format InputFormat `yaml:"format"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Extensions lists the file extensions picked up when walking directories.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// MaxFileSize is the largest input file converted, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	// Output configures output file placement.
	Output OutputConfig `yaml:"output"`

	// Watch configures watch mode.
	Watch WatchConfig `yaml:"watch"`

	// CLI-level options (not persisted to config files).

	// DryRun converts without writing any output file.
	DryRun bool `yaml:"-"`

	// Stdout writes converted text to standard output instead of files.
	Stdout bool `yaml:"-"`

	// Report specifies the run report format.
	Report ReportFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`
}

// DefaultExtensions are the extensions converted when walking directories.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".xhtml", ".md", ".markdown"}
}

// DefaultDebounce is the default watch debounce interval.
const DefaultDebounce = 200 * time.Millisecond

// DefaultMaxFileSize is the default input size limit.
const DefaultMaxFileSize int64 = 64 << 20

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format:      InputAuto,
		Flavor:      FlavorCommonMark,
		Extensions:  DefaultExtensions(),
		Ignore:      nil,
		MaxFileSize: DefaultMaxFileSize,
		Output: OutputConfig{
			Extension: ".txt",
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
		Report: ReportText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}
