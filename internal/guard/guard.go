// Package guard drives one differential regression run: it renders solver
// input, runs the legacy solver, and either compares it against a candidate
// solver or captures a legacy baseline snapshot.
package guard

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/refguard/internal/config"
	"github.com/AndreyAkinshin/refguard/internal/diff"
	"github.com/AndreyAkinshin/refguard/internal/errors"
	"github.com/AndreyAkinshin/refguard/internal/logging"
	"github.com/AndreyAkinshin/refguard/internal/solver"
)

// DefaultWorkRoot is where per-case temp roots and baseline snapshots live.
const DefaultWorkRoot = "build/refactor-guard/two-puncture"

// File names written next to the legacy run.
const (
	LegacyStdoutName   = "legacy.stdout.log"
	LegacyArtifactName = "legacy." + solver.ArtifactFileName
)

// State is a step of the run state machine.
type State string

const (
	StateInit            State = "init"
	StateBuildInput      State = "build-input"
	StateRunLegacy       State = "run-legacy"
	StateRunCandidate    State = "run-candidate"
	StateCompare         State = "compare"
	StatePass            State = "pass"
	StateFail            State = "fail"
	StateCaptureBaseline State = "capture-baseline"
	StateDone            State = "done"
)

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StatePass || s == StateFail || s == StateDone
}

// Options configures a Guard.
type Options struct {
	LegacyBin        string
	CandidateBin     string // empty selects baseline capture
	WorkRoot         string // defaults to DefaultWorkRoot
	RequireCandidate bool
	Logger           *zap.Logger

	// Progress, when set, receives one line per state transition.
	Progress func(format string, args ...interface{})
}

// Outcome describes how a case run ended.
//
// On success State is StatePass or StateDone. On error State is the state
// that failed, except that comparison failures end in StateFail.
type Outcome struct {
	Case        string
	State       State
	Report      *diff.Report
	SnapshotDir string // set after baseline capture
	Legacy      *solver.Run
	Candidate   *solver.Run
	Duration    time.Duration
}

// Guard runs cases against a fixed pair of solver binaries.
type Guard struct {
	legacyBin        string
	candidateBin     string
	workRoot         string
	requireCandidate bool
	runner           *solver.Runner
	logger           *zap.Logger
	progress         func(format string, args ...interface{})
}

// New resolves and checks the solver binaries and the work root.
func New(opts Options) (*Guard, error) {
	if opts.LegacyBin == "" {
		return nil, errors.Config("legacy binary is required")
	}
	legacy, err := solver.CheckBinary("legacy", opts.LegacyBin)
	if err != nil {
		return nil, err
	}

	var candidate string
	if opts.CandidateBin != "" {
		candidate, err = solver.CheckBinary("candidate", opts.CandidateBin)
		if err != nil {
			return nil, err
		}
	}

	workRoot := opts.WorkRoot
	if workRoot == "" {
		workRoot = DefaultWorkRoot
	}
	workRoot, err = filepath.Abs(workRoot)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve work root")
	}

	logger := logging.OrNop(opts.Logger)
	progress := opts.Progress
	if progress == nil {
		progress = func(string, ...interface{}) {}
	}

	return &Guard{
		legacyBin:        legacy,
		candidateBin:     candidate,
		workRoot:         workRoot,
		requireCandidate: opts.RequireCandidate,
		runner:           solver.NewRunner(logger),
		logger:           logger,
		progress:         progress,
	}, nil
}

// WorkRoot returns the absolute work root.
func (g *Guard) WorkRoot() string {
	return g.workRoot
}

// HasCandidate reports whether a candidate binary is configured.
func (g *Guard) HasCandidate() bool {
	return g.candidateBin != ""
}

// SnapshotDir returns the baseline snapshot directory for a case name.
func (g *Guard) SnapshotDir(name string) string {
	return filepath.Join(g.workRoot, name+"-latest-legacy")
}

// Run executes one case. The per-case temp root is removed before Run
// returns; only a baseline snapshot outlives the call.
func (g *Guard) Run(ctx context.Context, c *config.Case) (*Outcome, error) {
	start := time.Now()
	out := &Outcome{Case: c.Name, State: StateInit}
	log := g.logger.With(zap.String("case", c.Name))

	defer func() {
		out.Duration = time.Since(start)
		log.Debug("case finished",
			zap.String("state", string(out.State)),
			zap.Duration("elapsed", out.Duration))
	}()

	if err := os.MkdirAll(g.workRoot, 0o755); err != nil {
		return out, errors.Wrap(err, "failed to create work root")
	}

	out.State = StateBuildInput
	inputText, err := solver.BuildInputText(c.Params)
	if err != nil {
		return out, err
	}

	tmp, err := os.MkdirTemp(g.workRoot, c.Name+"_")
	if err != nil {
		return out, errors.Wrap(err, "failed to create temp root")
	}
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			log.Warn("failed to remove temp root", zap.String("dir", tmp), zap.Error(err))
		}
	}()
	log.Debug("temp root created", zap.String("dir", tmp))

	out.State = StateRunLegacy
	g.progress("running legacy solver")
	legacy, err := g.runner.RunCase(ctx, g.legacyBin, inputText, filepath.Join(tmp, "legacy"))
	if err != nil {
		return out, err
	}
	out.Legacy = legacy

	if err := writeLegacyFiles(tmp, legacy); err != nil {
		return out, err
	}

	if g.candidateBin == "" {
		if g.requireCandidate {
			return out, errors.Config("candidate binary is required but not provided")
		}
		out.State = StateCaptureBaseline
		g.progress("legacy run completed")
		g.progress("set --candidate-bin (or REFGUARD_CANDIDATE_BIN) to enable differential checks")

		dir, err := g.captureBaseline(c.Name, inputText, legacy)
		if err != nil {
			return out, err
		}
		out.SnapshotDir = dir
		out.State = StateDone
		log.Debug("baseline captured", zap.String("dir", dir))
		return out, nil
	}

	out.State = StateRunCandidate
	g.progress("running candidate solver")
	candidate, err := g.runner.RunCase(ctx, g.candidateBin, inputText, filepath.Join(tmp, "candidate"))
	if err != nil {
		return out, err
	}
	out.Candidate = candidate

	out.State = StateCompare
	report, err := diff.CompareOutputs(
		diff.Outputs{Stdout: legacy.Stdout, Artifact: legacy.Artifact},
		diff.Outputs{Stdout: candidate.Stdout, Artifact: candidate.Artifact},
		c.Tolerance,
		c.IgnoreLinePatterns,
	)
	out.Report = report
	if err != nil {
		if kind, _ := errors.KindOf(err); kind == errors.KindCompare {
			out.State = StateFail
		}
		return out, err
	}

	out.State = StatePass
	g.progress("legacy-vs-candidate diff passed")
	return out, nil
}

func writeLegacyFiles(dir string, run *solver.Run) error {
	if err := os.WriteFile(filepath.Join(dir, LegacyStdoutName), []byte(run.Stdout), 0o644); err != nil {
		return errors.Wrap(err, "failed to write legacy stdout")
	}
	if err := os.WriteFile(filepath.Join(dir, LegacyArtifactName), []byte(run.Artifact), 0o644); err != nil {
		return errors.Wrap(err, "failed to write legacy artifact")
	}
	return nil
}

// captureBaseline replaces the snapshot directory of name with the input
// and outputs of the legacy run.
func (g *Guard) captureBaseline(name, inputText string, run *solver.Run) (string, error) {
	dir := g.SnapshotDir(name)
	if err := os.RemoveAll(dir); err != nil {
		return "", errors.Wrap(err, "failed to remove previous snapshot")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create snapshot directory")
	}
	if err := os.WriteFile(filepath.Join(dir, solver.InputFileName), []byte(inputText), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write snapshot input")
	}
	if err := writeLegacyFiles(dir, run); err != nil {
		return "", err
	}
	return dir, nil
}
