// Package diff compares the outputs of a legacy and a candidate solver run
// stage by stage, stopping at the first stage that fails.
package diff

import (
	"github.com/AndreyAkinshin/refguard/internal/config"
	"github.com/AndreyAkinshin/refguard/internal/errors"
	"github.com/AndreyAkinshin/refguard/internal/numdiff"
)

// Stage identifies one comparison stage.
type Stage string

const (
	StageNumericSequence Stage = "numeric-sequence"
	StageNamedValues     Stage = "named-values"
	StageStdoutMetrics   Stage = "stdout-metrics"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageNumericSequence, StageNamedValues, StageStdoutMetrics}

// Label is the subject named in the stage's failure message.
func (s Stage) Label() string {
	switch s {
	case StageNumericSequence:
		return "Ansorg.psid numeric sequence"
	case StageNamedValues:
		return "Ansorg.psid named value"
	case StageStdoutMetrics:
		return "stdout metric"
	default:
		return string(s)
	}
}

// Description is a short human-readable name of the stage.
func (s Stage) Description() string {
	switch s {
	case StageNumericSequence:
		return "numeric sequence"
	case StageNamedValues:
		return "named values"
	case StageStdoutMetrics:
		return "stdout metrics"
	default:
		return string(s)
	}
}

// NamedValueKeys are the physical parameters checked by name in the output
// artifact: the two bare masses and the y momenta of both punctures.
func NamedValueKeys() []string {
	return []string{"bhmass1", "bhmass2", "bhpy1", "bhpy2"}
}

// MetricKeys are the stdout metrics checked in the last stage.
func MetricKeys() []string {
	return []string{MetricResultedMp, MetricResultedMm, MetricTotalADMMass}
}

// Outputs is what one solver run produced.
type Outputs struct {
	Stdout   string
	Artifact string
}

// StageResult records the outcome of one stage.
type StageResult struct {
	Stage  Stage
	Result numdiff.Result
}

// Report lists the stages that ran, in order. On failure the last entry is
// the failing stage.
type Report struct {
	Stages []StageResult
}

// Passed reports whether every stage ran and passed.
func (r *Report) Passed() bool {
	if len(r.Stages) != len(Stages) {
		return false
	}
	for _, s := range r.Stages {
		if !s.Result.OK {
			return false
		}
	}
	return true
}

func (r *Report) record(stage Stage, res numdiff.Result) error {
	r.Stages = append(r.Stages, StageResult{Stage: stage, Result: res})
	if res.OK {
		return nil
	}
	return errors.Compare(string(stage), stage.Label(), res.Reason)
}

// CompareOutputs runs the comparison stages in order:
//
//  1. both artifacts are filtered with ignorePatterns;
//  2. the full float sequences of the filtered artifacts are compared
//     positionally at the ansorg tolerances;
//  3. the NamedValueKeys of the filtered artifacts are compared at the
//     ansorg tolerances;
//  4. the MetricKeys parsed from raw, unfiltered stdout are compared at the
//     stdout tolerances.
//
// The first failing stage ends the comparison with a compare error tagged
// with that stage. The returned report is non-nil whenever patterns compile.
func CompareOutputs(legacy, candidate Outputs, tol config.Tolerance, ignorePatterns []string) (*Report, error) {
	compiled, err := numdiff.CompilePatterns(ignorePatterns)
	if err != nil {
		return nil, &errors.Error{Kind: errors.KindConfig, Message: err.Error(), Cause: err}
	}

	legacyClean := numdiff.FilterLines(legacy.Artifact, compiled)
	candidateClean := numdiff.FilterLines(candidate.Artifact, compiled)

	report := &Report{}
	ansorg := tol.Ansorg()

	seq := numdiff.CompareFloatSequences(
		numdiff.ExtractFloatSequence(legacyClean),
		numdiff.ExtractFloatSequence(candidateClean),
		ansorg.Rtol, ansorg.Atol,
	)
	if err := report.record(StageNumericSequence, seq); err != nil {
		return report, err
	}

	named := numdiff.CompareNamedValues(
		numdiff.ParseKeyValueNumbers(legacyClean),
		numdiff.ParseKeyValueNumbers(candidateClean),
		NamedValueKeys(),
		ansorg.Rtol, ansorg.Atol,
	)
	if err := report.record(StageNamedValues, named); err != nil {
		return report, err
	}

	stdout := tol.Stdout()
	metrics := numdiff.CompareNamedValues(
		ParseStdoutMetrics(legacy.Stdout),
		ParseStdoutMetrics(candidate.Stdout),
		MetricKeys(),
		stdout.Rtol, stdout.Atol,
	)
	if err := report.record(StageStdoutMetrics, metrics); err != nil {
		return report, err
	}

	return report, nil
}
