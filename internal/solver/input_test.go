package solver

import (
	"strings"
	"testing"

	"github.com/AndreyAkinshin/refguard/internal/errors"
)

func sampleParams() Params {
	return Params{
		"mm":          0.5,
		"mp":          0.5,
		"b":           3.0,
		"P_plusx":     0.0,
		"P_plusy":     0.1,
		"P_plusz":     0.0,
		"P_minusx":    0.0,
		"P_minusy":    -0.1,
		"P_minusz":    0.0,
		"S_plusx":     0.0,
		"S_plusy":     0.0,
		"S_plusz":     0.0,
		"S_minusx":    0.0,
		"S_minusy":    0.0,
		"S_minusz":    0.0,
		"Mp":          1.0,
		"Mm":          1.0,
		"admtol":      1.0e-8,
		"Newtontol":   1.0e-8,
		"nA":          12,
		"nB":          12,
		"nphi":        8,
		"Newtonmaxit": 5,
	}
}

func TestBuildInputText_ContainsRequiredLines(t *testing.T) {
	t.Parallel()

	text, err := BuildInputText(sampleParams())
	if err != nil {
		t.Fatalf("BuildInputText() error = %v", err)
	}

	for _, want := range []string{"ABE::mm = 0.5\n", "ABE::nphi = 8\n", "ABE::admtol = 1e-08\n", "ABE::P_minusy = -0.1\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("input text missing %q:\n%s", want, text)
		}
	}
	if got := strings.Count(text, "ABE::"); got != 23 {
		t.Errorf("ABE:: count = %d, want 23", got)
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("input text should end with a newline")
	}
}

func TestBuildInputText_PinnedOrder(t *testing.T) {
	t.Parallel()

	p := sampleParams()
	p["extra"] = 42

	text, err := BuildInputText(p)
	if err != nil {
		t.Fatalf("BuildInputText() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	keys := RequiredKeys()
	if len(lines) != len(keys) {
		t.Fatalf("got %d lines, want %d", len(lines), len(keys))
	}
	for i, key := range keys {
		prefix := "ABE::" + key + " = "
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
	if strings.Contains(text, "extra") {
		t.Error("extra keys must not be rendered")
	}
}

func TestBuildInputText_MissingKey(t *testing.T) {
	t.Parallel()

	_, err := BuildInputText(Params{"mm": 0.5})
	if err == nil {
		t.Fatal("expected error for missing keys")
	}
	if kind, _ := errors.KindOf(err); kind != errors.KindConfig {
		t.Errorf("kind = %v, want config", kind)
	}
	if !strings.Contains(err.Error(), "missing key in params: mp") {
		t.Errorf("error = %q, want first missing key named", err)
	}
}

// Dropping any single required key is an error; all 23 present is not.
func TestBuildInputText_EachKeyRequired(t *testing.T) {
	t.Parallel()

	for _, key := range RequiredKeys() {
		p := sampleParams()
		delete(p, key)
		if _, err := BuildInputText(p); err == nil {
			t.Errorf("expected error when %q is missing", key)
		} else if !strings.HasSuffix(err.Error(), ": "+key) {
			t.Errorf("error = %q, want it to name %q", err, key)
		}
	}
}

func TestRequiredKeys_IsCopy(t *testing.T) {
	t.Parallel()

	keys := RequiredKeys()
	if len(keys) != 23 {
		t.Fatalf("len(RequiredKeys()) = %d, want 23", len(keys))
	}
	keys[0] = "mutated"
	if RequiredKeys()[0] != "mm" {
		t.Error("RequiredKeys must return a copy")
	}
}

func TestParams_MissingKeys(t *testing.T) {
	t.Parallel()

	if got := sampleParams().MissingKeys(); len(got) != 0 {
		t.Errorf("MissingKeys() = %v, want none", got)
	}

	p := sampleParams()
	delete(p, "nphi")
	delete(p, "mm")
	got := p.MissingKeys()
	if strings.Join(got, ",") != "mm,nphi" {
		t.Errorf("MissingKeys() = %v, want [mm nphi]", got)
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{-3, "-3"},
		{0.5, "0.5"},
		{-0.1, "-0.1"},
		{1e-8, "1e-08"},
		{1.5e-5, "1.5e-05"},
		{0.0001, "0.0001"},
		{1234567.5, "1234567.5"},
		{1e20, "1e+20"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
