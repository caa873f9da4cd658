package config

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/AndreyAkinshin/refguard/internal/solver"
)

// Case names become directory name prefixes under the work root.
var caseNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// MinGridResolution is the smallest nA/nB the reference case suite uses.
const MinGridResolution = 8

// Parameters the solver reads as integers.
var integerParams = []string{"nA", "nB", "nphi", "Newtonmaxit"}

// ValidationError represents a case validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a case for errors and returns warnings for non-fatal issues.
func Validate(c *Case) (warnings []string, err error) {
	if err := ValidateCaseName(c.Name); err != nil {
		return nil, err
	}
	if err := validateTolerance(c.Tolerance); err != nil {
		return nil, err
	}
	if err := validateParams(c.Params); err != nil {
		return nil, err
	}
	if err := validatePatterns(c.IgnoreLinePatterns); err != nil {
		return nil, err
	}

	return paramWarnings(c.Params), nil
}

// ValidateCaseName checks if a case name is valid.
func ValidateCaseName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "name", Message: "must be 128 characters or less"}
	}
	if !caseNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "name",
			Message: "must match pattern ^[A-Za-z0-9][A-Za-z0-9_.-]*$ (letters, digits, '_', '.', '-')",
		}
	}
	return nil
}

func validateTolerance(t Tolerance) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"ansorg_rtol", t.AnsorgRtol},
		{"ansorg_atol", t.AnsorgAtol},
		{"stdout_rtol", t.StdoutRtol},
		{"stdout_atol", t.StdoutAtol},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return &ValidationError{
				Field:   "tolerance." + f.name,
				Message: fmt.Sprintf("must be a finite non-negative number, got %v", f.value),
			}
		}
	}
	return nil
}

func validateParams(p solver.Params) error {
	missing := p.MissingKeys()
	if len(missing) > 0 {
		return &ValidationError{
			Field:   "params",
			Message: "missing required keys: " + strings.Join(missing, ", "),
		}
	}
	for _, key := range solver.RequiredKeys() {
		if v := p[key]; math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{Field: "params." + key, Message: "must be finite"}
		}
	}
	return nil
}

func validatePatterns(patterns []string) error {
	for i, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("ignore_line_patterns[%d]", i),
				Message: fmt.Sprintf("invalid regular expression %q: %v", p, err),
			}
		}
	}
	return nil
}

func paramWarnings(p solver.Params) []string {
	var warnings []string

	for _, key := range []string{"nA", "nB"} {
		if v := p[key]; v < MinGridResolution {
			warnings = append(warnings, fmt.Sprintf("params.%s = %v is below the minimum grid resolution %d", key, v, MinGridResolution))
		}
	}
	for _, key := range integerParams {
		if v := p[key]; v != math.Trunc(v) {
			warnings = append(warnings, fmt.Sprintf("params.%s = %v is not an integer", key, v))
		}
	}

	required := make(map[string]bool)
	for _, key := range solver.RequiredKeys() {
		required[key] = true
	}
	for _, key := range sortedKeys(p) {
		if !required[key] {
			warnings = append(warnings, fmt.Sprintf("unused parameter %q (ignored)", key))
		}
	}

	return warnings
}
