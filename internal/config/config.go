package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/refguard/internal/schema"
)

// IsCaseFile reports whether path has a case file extension.
func IsCaseFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads and parses a case file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(path string) (*Case, error) {
	data, err := readNormalized(path)
	if err != nil {
		return nil, err
	}

	var c Case
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse case file: %w", err)
	}
	c.Path = path

	return &c, nil
}

// LoadWithDefaults reads a case file and applies default values.
func LoadWithDefaults(path string) (*Case, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyDefaults(c)
	return c, nil
}

// LoadAndValidate reads a case file, checks it against the case schema,
// applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Case, []string, error) {
	data, err := readNormalized(path)
	if err != nil {
		return nil, nil, err
	}

	if err := schema.ValidateCase(data); err != nil {
		return nil, nil, err
	}

	c, unknownWarnings, err := LoadWithWarnings(path, data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(c)

	validationWarnings, err := Validate(c)

	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return c, allWarnings, nil
}

// readNormalized reads path and returns its content as JSON.
func readNormalized(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlToJSON(data)
	default:
		return data, nil
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse case file: %w", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to parse case file: unsupported YAML structure: %w", err)
	}
	return out, nil
}
