package cli

import (
	"fmt"

	"github.com/AndreyAkinshin/refguard/internal/config"
	"github.com/AndreyAkinshin/refguard/internal/guard"
	"github.com/AndreyAkinshin/refguard/internal/output"
)

// succeeded reports whether an outcome ended without error.
func succeeded(o *guard.Outcome) bool {
	return o.State == guard.StatePass || o.State == guard.StateDone
}

// reportOutcome prints the stages a case ran and how it ended.
func reportOutcome(o *guard.Outcome, err error) {
	if o.Report != nil {
		for _, s := range o.Report.Stages {
			if s.Result.OK {
				out.StagePassed(s.Stage.Description())
			} else {
				out.StageFailed(s.Stage.Description(), s.Result.Reason)
			}
		}
	}

	if err != nil {
		out.CaseFailed(o.Case, err)
		return
	}
	if o.State == guard.StateDone {
		out.Info("baseline snapshot written to %s", o.SnapshotDir)
	}
	out.CaseSuccess(o.Case, o.Duration)
}

// printSuiteSummary prints one row per case, including cases that did not
// run because an earlier one failed.
func printSuiteSummary(suite []*config.Case, result *guard.SuiteResult) {
	out.SummaryHeader("suite summary")

	passed := 0
	for i, c := range suite {
		if i >= len(result.Outcomes) {
			out.SummaryAction(c.Name, false, "not run")
			continue
		}
		o := result.Outcomes[i]
		ok := succeeded(o)
		if ok {
			passed++
		}
		out.SummaryAction(c.Name, ok, fmt.Sprintf("%-16s %s", o.State, output.FormatDuration(o.Duration)))
	}

	out.Println("")
	switch {
	case result.Passed():
		out.FinalSuccess("%d/%d cases passed", passed, len(suite))
	case result.Failed != "":
		out.FinalFailure("%d/%d cases passed; stopped at %s", passed, len(suite), result.Failed)
	default:
		out.FinalFailure("suite interrupted: %v", result.Err)
	}
}
