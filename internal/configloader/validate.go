package configloader

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/textorize/pkg/config"
	"github.com/yaklabco/textorize/pkg/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "output.extension").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownKeys lists the keys accepted in config files, by section.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = map[string][]string{
	"":       {"format", "flavor", "extensions", "ignore", "max_file_size", "output", "watch"},
	"output": {"extension", "dir"},
	"watch":  {"debounce"},
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings. Zero values are
// accepted everywhere since they mean "not set" in a config layer.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: auto, html, markdown, text", cfg.Format)
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.addError("flavor", cfg.Flavor,
			"invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.Report != "" && !IsValidReport(cfg.Report) {
		result.addError("report", cfg.Report,
			"invalid report format %q; must be one of: text, table, json, summary, diff", cfg.Report)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.MaxFileSize < 0 {
		result.addError("max_file_size", cfg.MaxFileSize, "max_file_size must be >= 0")
	}

	if cfg.Watch.Debounce < 0 {
		result.addError("watch.debounce", cfg.Watch.Debounce, "debounce must not be negative")
	}

	if strings.ContainsAny(cfg.Output.Extension, `/\`) {
		result.addError("output.extension", cfg.Output.Extension,
			"extension %q must not contain a path separator", cfg.Output.Extension)
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateExtensions checks that walked extensions look like ".ext".
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		switch {
		case ext == "":
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, "extension must not be empty")
		case !strings.HasPrefix(ext, "."):
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q has no leading dot; it matches file name suffixes", ext),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if err := runner.ValidateGlob(pattern); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "%v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// unknownKeys reports mapping keys in doc that no config field reads.
func unknownKeys(doc *yaml.Node, filePath string) []ValidationError {
	if doc == nil || len(doc.Content) == 0 {
		return nil
	}
	return walkKeys(doc.Content[0], "", filePath)
}

func walkKeys(node *yaml.Node, section, filePath string) []ValidationError {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	var found []ValidationError
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		field := key.Value
		if section != "" {
			field = section + "." + key.Value
		}

		if !isKnownKey(section, key.Value) {
			found = append(found, ValidationError{
				Field:    field,
				Value:    key.Value,
				Message:  "unknown key; it will be ignored",
				FilePath: filePath,
				Line:     key.Line,
			})
			continue
		}

		if _, nested := knownKeys[key.Value]; nested && section == "" {
			found = append(found, walkKeys(value, key.Value, filePath)...)
		}
	}
	return found
}

func isKnownKey(section, key string) bool {
	for _, k := range knownKeys[section] {
		if k == key {
			return true
		}
	}
	return false
}

// IsValidReport returns true if the report format is valid.
func IsValidReport(r config.ReportFormat) bool {
	switch r {
	case config.ReportText, config.ReportTable, config.ReportJSON, config.ReportSummary, config.ReportDiff:
		return true
	default:
		return false
	}
}
