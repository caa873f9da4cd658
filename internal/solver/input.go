// Package solver renders solver input files and runs solver binaries in
// isolated working directories.
package solver

import (
	"math"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/refguard/internal/errors"
)

// Solver file contract.
const (
	// InputFileName is the parameter file the solver reads from its working directory.
	InputFileName = "TwoPunctureinput.par"
	// ArtifactFileName is the output file the solver must write on success.
	ArtifactFileName = "Ansorg.psid"
	// InputPrefix is the thorn prefix of every parameter line.
	InputPrefix = "ABE"
)

// Params maps parameter names to values.
type Params map[string]float64

// requiredKeys is the legacy parameter order: masses and separation, momenta
// and spins per puncture, target masses, tolerances, grid sizes, iterations.
var requiredKeys = []string{
	"mm",
	"mp",
	"b",
	"P_plusx",
	"P_plusy",
	"P_plusz",
	"P_minusx",
	"P_minusy",
	"P_minusz",
	"S_plusx",
	"S_plusy",
	"S_plusz",
	"S_minusx",
	"S_minusy",
	"S_minusz",
	"Mp",
	"Mm",
	"admtol",
	"Newtontol",
	"nA",
	"nB",
	"nphi",
	"Newtonmaxit",
}

// RequiredKeys returns the parameter keys BuildInputText needs, in file order.
func RequiredKeys() []string {
	keys := make([]string, len(requiredKeys))
	copy(keys, requiredKeys)
	return keys
}

// MissingKeys returns the required keys absent from p, in file order.
func (p Params) MissingKeys() []string {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := p[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// BuildInputText renders p as solver input, one "ABE::<key> = <value>" line
// per required key. Extra keys in p are ignored. A missing key is a config
// error; no default is substituted.
func BuildInputText(p Params) (string, error) {
	var b strings.Builder
	for _, key := range requiredKeys {
		v, ok := p[key]
		if !ok {
			return "", errors.Configf("missing key in params: %s", key)
		}
		b.WriteString(InputPrefix)
		b.WriteString("::")
		b.WriteString(key)
		b.WriteString(" = ")
		b.WriteString(FormatValue(v))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// FormatValue renders v in its shortest round-trip form. Integral values
// have no fractional part, so grid sizes read as "12" rather than "12.0".
// Magnitudes outside [1e-4, 1e16) use exponent notation.
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	abs := math.Abs(v)
	if v == math.Trunc(v) && abs < 1e16 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if exp := math.Floor(math.Log10(abs)); exp >= -4 && exp < 16 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'e', -1, 64)
}
