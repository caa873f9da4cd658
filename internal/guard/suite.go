package guard

import (
	"context"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/refguard/internal/config"
)

// SuiteResult holds the outcomes of a suite run in execution order.
type SuiteResult struct {
	Outcomes []*Outcome
	Err      error  // first failure, nil if every case succeeded
	Failed   string // name of the failing case
}

// Passed reports whether every case succeeded.
func (r *SuiteResult) Passed() bool {
	return r.Err == nil
}

// SuiteHooks observe a suite run. Either field may be nil.
type SuiteHooks struct {
	Start  func(c *config.Case)
	Finish func(out *Outcome, err error)
}

// RunSuite runs cases one at a time in the given order and stops at the
// first failing case.
func (g *Guard) RunSuite(ctx context.Context, cases []*config.Case, hooks SuiteHooks) *SuiteResult {
	result := &SuiteResult{Outcomes: make([]*Outcome, 0, len(cases))}

	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}

		g.logger.Debug("suite case", zap.String("case", c.Name), zap.String("path", c.Path))
		if hooks.Start != nil {
			hooks.Start(c)
		}
		out, err := g.Run(ctx, c)
		result.Outcomes = append(result.Outcomes, out)
		if hooks.Finish != nil {
			hooks.Finish(out, err)
		}
		if err != nil {
			result.Err = err
			result.Failed = c.Name
			return result
		}
	}

	return result
}
