package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/textorize/pkg/config"
)

// envVarPrefix is the prefix for all textorize environment variables.
const envVarPrefix = "TEXTORIZE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSize
	envTypeDuration
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":         {field: "format", typ: envTypeString, description: "Input format: auto, html, markdown, or text"},
	"FLAVOR":         {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"EXTENSIONS":     {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of extensions to convert"},
	"IGNORE":         {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"MAX_FILE_SIZE":  {field: "max_file_size", typ: envTypeSize, description: "Largest input file converted, in bytes"},
	"OUTPUT_EXT":     {field: "output.extension", typ: envTypeString, description: "Extension of written text files"},
	"OUTPUT_DIR":     {field: "output.dir", typ: envTypeString, description: "Directory receiving text files"},
	"WATCH_DEBOUNCE": {field: "watch.debounce", typ: envTypeDuration, description: "Watch debounce interval (e.g. 200ms)"},
	"JOBS":           {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"DRY_RUN":        {field: "dry_run", typ: envTypeBool, description: "Dry-run mode: true or false"},
	"REPORT":         {field: "report", typ: envTypeString, description: "Report format: text, table, json, summary or diff"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with TEXTORIZE_ (e.g., TEXTORIZE_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSize:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size for %s: %q", envVar, value)
		}
		cfg.MaxFileSize = n
		return nil
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		cfg.Watch.Debounce = d
		return nil
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.InputFormat(value)
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "output.extension":
		cfg.Output.Extension = value
	case "output.dir":
		cfg.Output.Dir = value
	case "report":
		cfg.Report = config.ReportFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "dry_run":
		cfg.DryRun = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
