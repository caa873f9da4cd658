// Package numdiff provides the numeric primitives of the differential
// regression harness: filtering of nondeterministic lines, extraction of
// numbers from solver text, and tolerance-based comparison.
package numdiff

import (
	"fmt"
	"math"
)

// Result is the outcome of a single comparison.
type Result struct {
	OK     bool
	Reason string
}

// Tolerance is a relative/absolute tolerance pair.
type Tolerance struct {
	Rtol float64
	Atol float64
}

// Validate rejects negative and NaN tolerances.
func (t Tolerance) Validate() error {
	if math.IsNaN(t.Rtol) || t.Rtol < 0 {
		return fmt.Errorf("rtol must be a non-negative number, got %v", t.Rtol)
	}
	if math.IsNaN(t.Atol) || t.Atol < 0 {
		return fmt.Errorf("atol must be a non-negative number, got %v", t.Atol)
	}
	return nil
}

// IsClose reports whether |a-b| <= max(rtol*max(|a|,|b|), atol).
// Equal values, including equal infinities, are always close; NaN is never
// close to anything.
func IsClose(a, b, rtol, atol float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	diff := math.Abs(a - b)
	return diff <= rtol*math.Max(math.Abs(a), math.Abs(b)) || diff <= atol
}

// CompareFloatSequences compares expected and actual index by index.
// A length mismatch fails without any realignment; otherwise the first
// index outside tolerance is reported.
func CompareFloatSequences(expected, actual []float64, rtol, atol float64) Result {
	if len(expected) != len(actual) {
		return Result{
			Reason: fmt.Sprintf("length mismatch: expected=%d actual=%d", len(expected), len(actual)),
		}
	}

	for i := range expected {
		e, a := expected[i], actual[i]
		if !IsClose(e, a, rtol, atol) {
			return Result{
				Reason: fmt.Sprintf("value mismatch at index %d: %s", i, formatPair(e, a)),
			}
		}
	}

	return Result{OK: true, Reason: "all values are within tolerance"}
}

// CompareNamedValues compares the requested keys in order. Keys present in
// the maps but not listed in keys are ignored.
func CompareNamedValues(expected, actual map[string]float64, keys []string, rtol, atol float64) Result {
	for _, key := range keys {
		e, ok := expected[key]
		if !ok {
			return Result{Reason: "missing key in expected: " + key}
		}
		a, ok := actual[key]
		if !ok {
			return Result{Reason: "missing key in actual: " + key}
		}

		if !IsClose(e, a, rtol, atol) {
			return Result{
				Reason: fmt.Sprintf("named value mismatch for '%s': %s", key, formatPair(e, a)),
			}
		}
	}

	return Result{OK: true, Reason: "all named values are within tolerance"}
}

func formatPair(e, a float64) string {
	return fmt.Sprintf("expected=%.16e actual=%.16e abs_diff=%.3e", e, a, math.Abs(e-a))
}
