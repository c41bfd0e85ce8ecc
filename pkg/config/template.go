package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option with its default value. If false, a
	// minimal template with commented examples is generated.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return []byte(fullTemplate), nil
	}
	return []byte(minimalTemplate), nil
}

const minimalTemplate = `# textorize configuration
# See: https://github.com/yaklabco/textorize

# Input format: auto, html, markdown or text
format: auto

# Markdown flavor: commonmark or gfm
flavor: commonmark

# File patterns to ignore (glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"

# Where converted text goes
# output:
#   extension: .txt
#   dir: text
`

const fullTemplate = `# textorize configuration - Full Template
# See: https://github.com/yaklabco/textorize
#
# Every option is listed with its default value.

# Input format: auto, html, markdown or text.
# auto picks the format per file from its extension and content.
format: auto

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Extensions converted when a directory is given
extensions:
  - .html
  - .htm
  - .xhtml
  - .md
  - .markdown

# File patterns to ignore (glob patterns)
ignore:
  - "node_modules/**"
  - ".git/**"

# Largest input file converted, in bytes
max_file_size: 67108864

output:
  # Extension of converted files
  extension: .txt
  # Write outputs below this directory instead of next to the input
  dir: ""

watch:
  # Wait this long for further changes before converting
  debounce: 200ms
`

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	def := NewConfig()
	cfg := map[string]any{
		"format":        def.Format,
		"flavor":        def.Flavor,
		"extensions":    def.Extensions,
		"ignore":        []string{"node_modules/**", ".git/**"},
		"max_file_size": def.MaxFileSize,
		"output": map[string]any{
			"extension": def.Output.Extension,
			"dir":       def.Output.Dir,
		},
		"watch": map[string]any{
			"debounce": def.Watch.Debounce.String(),
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# textorize configuration
# See: https://github.com/yaklabco/textorize`
}
