// Package config provides loading and validation of refguard case files.
package config

import (
	"github.com/AndreyAkinshin/refguard/internal/numdiff"
	"github.com/AndreyAkinshin/refguard/internal/solver"
)

// Case is one differential regression scenario.
type Case struct {
	Name               string        `json:"name"`
	Description        string        `json:"description,omitempty"`
	Params             solver.Params `json:"params"`
	Tolerance          Tolerance     `json:"tolerance"`
	IgnoreLinePatterns []string      `json:"ignore_line_patterns,omitempty"`

	// Path is the file the case was loaded from.
	Path string `json:"-"`
}

// Tolerance holds the comparison tolerances of a case. The ansorg pair
// applies to the output artifact, the stdout pair to solver stdout metrics.
type Tolerance struct {
	AnsorgRtol float64 `json:"ansorg_rtol"`
	AnsorgAtol float64 `json:"ansorg_atol"`
	StdoutRtol float64 `json:"stdout_rtol"`
	StdoutAtol float64 `json:"stdout_atol"`
}

// Ansorg returns the artifact tolerance pair.
func (t Tolerance) Ansorg() numdiff.Tolerance {
	return numdiff.Tolerance{Rtol: t.AnsorgRtol, Atol: t.AnsorgAtol}
}

// Stdout returns the stdout metric tolerance pair.
func (t Tolerance) Stdout() numdiff.Tolerance {
	return numdiff.Tolerance{Rtol: t.StdoutRtol, Atol: t.StdoutAtol}
}
