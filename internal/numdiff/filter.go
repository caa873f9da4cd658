package numdiff

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// CompilePatterns compiles ignore-line patterns in order.
// The first invalid pattern is reported together with its index.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %d (%q): %w", i, p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// StripIgnoredLines removes every line of text matched anywhere by at least
// one of patterns. Surviving lines keep their relative order and are joined
// with "\n"; a trailing newline is kept iff text ended with one.
func StripIgnoredLines(text string, patterns []string) (string, error) {
	compiled, err := CompilePatterns(patterns)
	if err != nil {
		return "", err
	}
	return FilterLines(text, compiled), nil
}

// FilterLines is StripIgnoredLines with precompiled patterns.
func FilterLines(text string, patterns []*regexp.Regexp) string {
	lines := splitLines(text)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if matchesAny(line, patterns) {
			continue
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	if strings.HasSuffix(text, "\n") {
		out += "\n"
	}
	return out
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// splitLines splits on "\r\n" and on every single-rune line boundary
// (see isLineBoundary) without producing a trailing empty element for a
// final terminator.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if i < start || !isLineBoundary(r) {
			continue
		}
		lines = append(lines, text[start:i])
		start = i + utf8.RuneLen(r)
		if r == '\r' && start < len(text) && text[start] == '\n' {
			start++
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// isLineBoundary reports ASCII vertical whitespace, the file/group/record
// separators, NEL and the Unicode line and paragraph separators.
func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
