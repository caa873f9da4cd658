package numdiff

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// floatToken matches signed integers, decimals with a leading or trailing
// dot, and an optional exponent.
var floatToken = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`[-+]?(?:\d+\.\d*|\d*\.\d+|\d+)(?:[eE][-+]?\d+)?`)
})

// ExtractFloatSequence returns every float token in text in encounter order,
// ignoring whatever labels or formatting surround them.
func ExtractFloatSequence(text string) []float64 {
	matches := floatToken().FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, ok := ParseFloat(m)
		if !ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ParseKeyValueNumbers collects "key = value" lines whose value is a float.
// Lines without '=', with an empty key, or with a non-numeric value are
// skipped. A repeated key keeps its last value.
func ParseKeyValueNumbers(text string) map[string]float64 {
	out := make(map[string]float64)
	for _, line := range splitLines(text) {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if v, ok := ParseFloat(value); ok {
			out[key] = v
		}
	}
	return out
}

// ParseFloat parses s as a decimal float after trimming surrounding
// whitespace. It accepts "inf", "infinity" and "nan" in any case with an
// optional sign, single underscores between digits, and saturates
// out-of-range values to ±Inf. Hexadecimal forms are rejected.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX") {
		return 0, false
	}
	if strings.Contains(s, "_") {
		var ok bool
		if s, ok = stripDigitSeparators(s); !ok {
			return 0, false
		}
	}
	if isNaNLiteral(s) {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// stripDigitSeparators removes underscores that sit between two digits and
// reports false for any other underscore.
func stripDigitSeparators(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNaNLiteral(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return strings.EqualFold(s, "nan")
}
