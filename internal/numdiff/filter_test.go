package numdiff

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStripIgnoredLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		patterns []string
		want     string
	}{
		{"single pattern", "#time line\na=1\nb=2\n", []string{`^#`}, "a=1\nb=2\n"},
		{"multiple patterns", "skip this\nkeep=1\nremove me\n", []string{`^skip`, `remove`}, "keep=1\n"},
		{"substring search not full match", "x = 1 # generated\ny = 2\n", []string{`generated`}, "y = 2\n"},
		{"no trailing newline kept absent", "a\n#b\nc", []string{`^#`}, "a\nc"},
		{"no patterns", "a\nb\n", nil, "a\nb\n"},
		{"empty text", "", []string{`.`}, ""},
		{"everything removed keeps newline", "a\nb\n", []string{`.`}, "\n"},
		{"crlf input normalized", "a\r\n#b\r\nc\r\n", []string{`^#`}, "a\nc\n"},
		{"form feed separates lines", "a\fdrop\nkeep\n", []string{`^drop`}, "a\nkeep\n"},
		{"vertical tab and record separator", "drop 1\vkeep\x1edrop 2\n", []string{`^drop`}, "keep\n"},
		{"unicode line separators", "keep\u2028drop\u2029x\u0085drop\n", []string{`^drop`}, "keep\nx\n"},
		{"blank lines kept", "a\n\n#b\n", []string{`^#`}, "a\n\n"},
		{"timestamp banner", "#File created on Wed Feb 18 00:00:00 2026\nbhmass1 = 0.5\n", []string{`^#File created on `}, "bhmass1 = 0.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := StripIgnoredLines(tt.text, tt.patterns)
			if err != nil {
				t.Fatalf("StripIgnoredLines() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("StripIgnoredLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripIgnoredLines_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := StripIgnoredLines("a\n", []string{`ok`, `(unclosed`})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if !strings.Contains(err.Error(), "ignore pattern 1") {
		t.Errorf("error should name the pattern index, got: %v", err)
	}
}

// Surviving lines never match a pattern and keep their relative order.
func TestFilterLines_Properties(t *testing.T) {
	t.Parallel()

	text := "alpha 1\n#stamp\nbeta 2\ngamma skip\n\ndelta 4\n#stamp again\nepsilon\n"
	patterns := []*regexp.Regexp{regexp.MustCompile(`^#`), regexp.MustCompile(`skip`)}

	got := FilterLines(text, patterns)
	lines := splitLines(got)

	for _, line := range lines {
		for _, p := range patterns {
			if p.MatchString(line) {
				t.Errorf("line %q still matches %s", line, p)
			}
		}
	}

	want := []string{"alpha 1", "beta 2", "", "delta 4", "epsilon"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("FilterLines() lines = %q, want %q", lines, want)
	}
}

func TestCompilePatterns(t *testing.T) {
	t.Parallel()

	compiled, err := CompilePatterns([]string{`^#`, `\d+`})
	if err != nil {
		t.Fatalf("CompilePatterns() error = %v", err)
	}
	if len(compiled) != 2 {
		t.Fatalf("len = %d, want 2", len(compiled))
	}
	if compiled[0].String() != `^#` {
		t.Errorf("order not preserved: %s", compiled[0])
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\r\nb", []string{"a", "", "b"}},
		{"a\fb\x1cc\x1dd", []string{"a", "b", "c", "d"}},
		{"a\n\n", []string{"a", ""}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitLines(tt.text)); diff != "" {
			t.Errorf("splitLines(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}
