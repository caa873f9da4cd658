package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// LoadWithWarnings parses JSON case data and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Case, []string, error) {
	var c Case
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, nil, fmt.Errorf("failed to parse case file: %w", err)
	}
	c.Path = path

	warnings := detectUnknownFields(data)

	return &c, warnings, nil
}

// detectUnknownFields compares raw JSON with known struct fields.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse case for unknown field detection"}
	}

	knownTopLevel := getJSONFields(reflect.TypeOf(Case{}))
	for _, key := range sortedKeys(raw) {
		if key == "$schema" {
			continue
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if tolRaw, ok := raw["tolerance"]; ok {
		var tol map[string]json.RawMessage
		if err := json.Unmarshal(tolRaw, &tol); err == nil {
			knownTol := getJSONFields(reflect.TypeOf(Tolerance{}))
			for _, key := range sortedKeys(tol) {
				if !knownTol[key] {
					warnings = append(warnings, fmt.Sprintf("unknown field %q in tolerance (ignored)", key))
				}
			}
		}
	}

	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
