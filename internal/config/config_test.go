package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validCaseJSON = `{
  "name": "equal_mass_boosted",
  "description": "two equal punctures with opposite y momenta",
  "params": {
    "mm": 0.5, "mp": 0.5, "b": 3.0,
    "P_plusx": 0.0, "P_plusy": 0.1, "P_plusz": 0.0,
    "P_minusx": 0.0, "P_minusy": -0.1, "P_minusz": 0.0,
    "S_plusx": 0.0, "S_plusy": 0.0, "S_plusz": 0.0,
    "S_minusx": 0.0, "S_minusy": 0.0, "S_minusz": 0.0,
    "Mp": 1.0, "Mm": 1.0,
    "admtol": 1e-8, "Newtontol": 1e-8,
    "nA": 12, "nB": 12, "nphi": 8, "Newtonmaxit": 5
  },
  "tolerance": {
    "ansorg_rtol": 1e-8,
    "ansorg_atol": 1e-10,
    "stdout_rtol": 1e-8,
    "stdout_atol": 1e-10
  },
  "ignore_line_patterns": ["^#File created on "]
}`

const validCaseYAML = `name: equal_mass_boosted
params:
  mm: 0.5
  mp: 0.5
  b: 3.0
  P_plusx: 0.0
  P_plusy: 0.1
  P_plusz: 0.0
  P_minusx: 0.0
  P_minusy: -0.1
  P_minusz: 0.0
  S_plusx: 0.0
  S_plusy: 0.0
  S_plusz: 0.0
  S_minusx: 0.0
  S_minusy: 0.0
  S_minusz: 0.0
  Mp: 1.0
  Mm: 1.0
  admtol: 1.0e-8
  Newtontol: 1.0e-8
  nA: 12
  nB: 12
  nphi: 8
  Newtonmaxit: 5
tolerance:
  ansorg_rtol: 1.0e-8
  ansorg_atol: 1.0e-10
  stdout_rtol: 1.0e-8
  stdout_atol: 1.0e-10
ignore_line_patterns:
  - "^#File created on "
`

func writeCase(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidJSON(t *testing.T) {
	t.Parallel()
	path := writeCase(t, "case.json", validCaseJSON)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Name != "equal_mass_boosted" {
		t.Errorf("Name = %q, want %q", c.Name, "equal_mass_boosted")
	}
	if c.Params["P_minusy"] != -0.1 {
		t.Errorf("Params[P_minusy] = %v, want -0.1", c.Params["P_minusy"])
	}
	if c.Params["nA"] != 12 {
		t.Errorf("Params[nA] = %v, want 12", c.Params["nA"])
	}
	if c.Tolerance.AnsorgAtol != 1e-10 {
		t.Errorf("Tolerance.AnsorgAtol = %v, want 1e-10", c.Tolerance.AnsorgAtol)
	}
	if c.Path != path {
		t.Errorf("Path = %q, want %q", c.Path, path)
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"case.yaml", "case.yml"} {
		path := writeCase(t, ext, validCaseYAML)

		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", ext, err)
		}
		if c.Params["admtol"] != 1e-8 {
			t.Errorf("%s: Params[admtol] = %v, want 1e-8", ext, c.Params["admtol"])
		}
		if c.Tolerance.StdoutRtol != 1e-8 {
			t.Errorf("%s: Tolerance.StdoutRtol = %v, want 1e-8", ext, c.Tolerance.StdoutRtol)
		}
		if len(c.IgnoreLinePatterns) != 1 || c.IgnoreLinePatterns[0] != "^#File created on " {
			t.Errorf("%s: IgnoreLinePatterns = %q", ext, c.IgnoreLinePatterns)
		}
	}
}

func TestLoad_YAMLAndJSONAgree(t *testing.T) {
	t.Parallel()

	fromJSON, err := Load(writeCase(t, "a.json", validCaseJSON))
	if err != nil {
		t.Fatal(err)
	}
	fromYAML, err := Load(writeCase(t, "a.yaml", validCaseYAML))
	if err != nil {
		t.Fatal(err)
	}

	if fromJSON.Tolerance != fromYAML.Tolerance {
		t.Errorf("tolerances differ: %+v vs %+v", fromJSON.Tolerance, fromYAML.Tolerance)
	}
	for k, v := range fromJSON.Params {
		if fromYAML.Params[k] != v {
			t.Errorf("param %s: json %v, yaml %v", k, v, fromYAML.Params[k])
		}
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/case.json")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read case file") {
		t.Errorf("error = %q", err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Load(writeCase(t, "case.json", `{"params": `))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse case file") {
		t.Errorf("error = %q", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Load(writeCase(t, "case.yaml", "not: valid: yaml: {{"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	t.Parallel()

	path := writeCase(t, "case.json", `{"params": {}, "tolerance": {"ansorg_rtol": 0, "ansorg_atol": 0, "stdout_rtol": 0, "stdout_atol": 0}}`)
	c, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if c.Name != DefaultCaseName {
		t.Errorf("Name = %q, want %q", c.Name, DefaultCaseName)
	}
	if len(c.IgnoreLinePatterns) != 1 || c.IgnoreLinePatterns[0] != DefaultIgnorePattern {
		t.Errorf("IgnoreLinePatterns = %q, want default", c.IgnoreLinePatterns)
	}
}

func TestLoadWithDefaults_ExplicitEmptyPatterns(t *testing.T) {
	t.Parallel()

	path := writeCase(t, "case.json", `{"params": {}, "tolerance": {"ansorg_rtol": 0, "ansorg_atol": 0, "stdout_rtol": 0, "stdout_atol": 0}, "ignore_line_patterns": []}`)
	c, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if c.IgnoreLinePatterns == nil || len(c.IgnoreLinePatterns) != 0 {
		t.Errorf("IgnoreLinePatterns = %#v, want explicit empty list", c.IgnoreLinePatterns)
	}
}

func TestLoadAndValidate_Valid(t *testing.T) {
	t.Parallel()

	c, warnings, err := LoadAndValidate(writeCase(t, "case.json", validCaseJSON))
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if c.Name != "equal_mass_boosted" {
		t.Errorf("Name = %q", c.Name)
	}
}

func TestLoadAndValidate_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, _, err := LoadAndValidate(writeCase(t, "case.json", `{"params": {"mm": "half"}, "tolerance": {}}`))
	if err == nil {
		t.Fatal("expected schema validation error")
	}
	if !strings.Contains(err.Error(), "case validation failed") {
		t.Errorf("error = %q", err)
	}
}

func TestLoadAndValidate_MissingParams(t *testing.T) {
	t.Parallel()

	content := strings.Replace(validCaseJSON, `"nphi": 8, `, "", 1)
	_, _, err := LoadAndValidate(writeCase(t, "case.json", content))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "missing required keys: nphi") {
		t.Errorf("error = %q", err)
	}
}

func TestLoadAndValidate_UnknownFieldWarnings(t *testing.T) {
	t.Parallel()

	content := strings.Replace(validCaseJSON, `"name":`, `"owner": "numerics", "name":`, 1)
	_, warnings, err := LoadAndValidate(writeCase(t, "case.json", content))
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `unknown field "owner"`) {
		t.Errorf("warnings = %v, want one unknown field warning", warnings)
	}
}

func TestLoadAndValidate_YAML(t *testing.T) {
	t.Parallel()

	c, warnings, err := LoadAndValidate(writeCase(t, "case.yaml", validCaseYAML))
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if c.Params["nB"] != 12 {
		t.Errorf("Params[nB] = %v", c.Params["nB"])
	}
}

func TestIsCaseFile(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"a.json":  true,
		"a.JSON":  true,
		"a.yaml":  true,
		"a.yml":   true,
		"a.txt":   false,
		"README":  false,
		"a.json~": false,
	}
	for path, want := range tests {
		if got := IsCaseFile(path); got != want {
			t.Errorf("IsCaseFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestTolerance_Pairs(t *testing.T) {
	t.Parallel()

	tol := Tolerance{AnsorgRtol: 1, AnsorgAtol: 2, StdoutRtol: 3, StdoutAtol: 4}
	if a := tol.Ansorg(); a.Rtol != 1 || a.Atol != 2 {
		t.Errorf("Ansorg() = %+v", a)
	}
	if s := tol.Stdout(); s.Rtol != 3 || s.Atol != 4 {
		t.Errorf("Stdout() = %+v", s)
	}
}
