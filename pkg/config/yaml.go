package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// ToYAML encodes the configuration as YAML. Format is CLI-only and never
// written.
func (c *Config) ToYAML() ([]byte, error) {
	return c.ToYAMLWithHeader("")
}

// ToYAMLWithHeader encodes the configuration as YAML below a comment
// header, separated by a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var out bytes.Buffer
	if header = strings.TrimRight(header, "\n"); header != "" {
		out.WriteString(header)
		out.WriteString("\n\n")
	}

	enc := yaml.NewEncoder(&out)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out.Bytes(), nil
}

// FromYAML decodes a configuration from YAML or JSON. Unknown keys are an
// error so a misspelt setting is reported instead of ignored. Blank input
// yields an empty Config.
func FromYAML(data []byte) (*Config, error) {
	cfg := new(Config)
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a copy of c that shares no mutable state with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	dup := *c
	dup.Glyphs.Bullets = slices.Clone(c.Glyphs.Bullets)
	if c.DetectCodeLanguage != nil {
		dup.DetectCodeLanguage = new(bool)
		*dup.DetectCodeLanguage = *c.DetectCodeLanguage
	}
	return &dup
}
