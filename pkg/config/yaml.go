package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// WriteYAML encodes the configuration to w. A non-empty header is written
// first, followed by a blank line.
func (c *Config) WriteYAML(w io.Writer, header string) error {
	if header != "" {
		if _, err := io.WriteString(w, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		sep := "\n"
		if header[len(header)-1] != '\n' {
			sep = "\n\n"
		}
		if _, err := io.WriteString(w, sep); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}
	return nil
}

// ToYAML returns the configuration as a YAML document, or nil for a nil
// configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := c.WriteYAML(&buf, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration document. Fields the document leaves out
// stay zero so callers can merge the result over defaults; an empty
// document yields an empty Config.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	err := yaml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	return &clone
}
