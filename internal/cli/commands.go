package cli

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/refguard/internal/cases"
	"github.com/AndreyAkinshin/refguard/internal/config"
	"github.com/AndreyAkinshin/refguard/internal/errors"
	"github.com/AndreyAkinshin/refguard/internal/guard"
	"github.com/AndreyAkinshin/refguard/internal/logging"
	"github.com/AndreyAkinshin/refguard/internal/output"
)

var out = output.New()

// newGuard builds a Guard from parsed flags, logging to stderr when verbose.
func newGuard(ro *runOptions, opts *GlobalOptions) (*guard.Guard, *zap.Logger, error) {
	logger := logging.New(out.ErrWriter(), opts.Verbose)
	g, err := guard.New(guard.Options{
		LegacyBin:        ro.LegacyBin,
		CandidateBin:     ro.CandidateBin,
		WorkRoot:         ro.WorkRoot,
		RequireCandidate: ro.RequireCandidate,
		Logger:           logger,
		Progress:         out.Info,
	})
	return g, logger, err
}

func printWarnings(path string, warnings []string) {
	for _, w := range warnings {
		out.Warning("%s: %s", path, w)
	}
}

// cmdRun runs a single case.
func cmdRun(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printRunUsage()
		return 0
	}

	ro, err := parseRunFlags(args, os.Getenv)
	if err != nil {
		out.ErrorPrefix("run: %v", err)
		return errors.ExitConfigError
	}
	if ro.CasePath == "" {
		out.ErrorPrefix("run: --case is required")
		return errors.ExitConfigError
	}
	if ro.CasesDir != "" {
		out.ErrorPrefix("run: --cases is only valid for suite")
		return errors.ExitConfigError
	}

	loaded, err := cases.LoadFile(ro.CasePath)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	printWarnings(ro.CasePath, loaded.Warnings)

	g, logger, err := newGuard(ro, opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out.CaseStart(loaded.Case.Name, ro.CasePath)
	outcome, err := g.Run(ctx, loaded.Case)
	reportOutcome(outcome, err)

	return errors.GetExitCode(err)
}

// cmdSuite runs every case of a directory.
func cmdSuite(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printSuiteUsage()
		return 0
	}

	ro, err := parseRunFlags(args, os.Getenv)
	if err != nil {
		out.ErrorPrefix("suite: %v", err)
		return errors.ExitConfigError
	}
	if ro.CasesDir == "" {
		out.ErrorPrefix("suite: --cases is required")
		return errors.ExitConfigError
	}
	if ro.CasePath != "" {
		out.ErrorPrefix("suite: --case is only valid for run")
		return errors.ExitConfigError
	}

	loaded, err := cases.LoadDir(ro.CasesDir)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	suite := make([]*config.Case, 0, len(loaded))
	for _, l := range loaded {
		printWarnings(l.Case.Path, l.Warnings)
		suite = append(suite, l.Case)
	}

	g, logger, err := newGuard(ro, opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result := g.RunSuite(ctx, suite, guard.SuiteHooks{
		Start:  func(c *config.Case) { out.CaseStart(c.Name, c.Path) },
		Finish: reportOutcome,
	})
	printSuiteSummary(suite, result)

	return errors.GetExitCode(result.Err)
}

// cmdValidate validates case files and directories.
func cmdValidate(args []string) int {
	if wantsHelp(args) {
		printValidateUsage()
		return 0
	}
	if len(args) == 0 {
		out.ErrorPrefix("validate: at least one case file or directory is required")
		return errors.ExitConfigError
	}

	out.Section("case validation")
	exitCode := errors.ExitSuccess
	for _, path := range args {
		if code := validatePath(path); code > exitCode {
			exitCode = code
		}
	}
	return exitCode
}

func validatePath(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		out.ErrorPrefix("validate: %v", err)
		return errors.ExitConfigError
	}

	var loaded []cases.Loaded
	if info.IsDir() {
		loaded, err = cases.LoadDir(path)
	} else {
		var l *cases.Loaded
		l, err = cases.LoadFile(path)
		if l != nil {
			loaded = []cases.Loaded{*l}
		}
	}
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	for _, l := range loaded {
		printWarnings(l.Case.Path, l.Warnings)
		out.ValidationSuccess("%s: case %q is valid", l.Case.Path, l.Case.Name)
	}
	return errors.ExitSuccess
}

func printRunUsage() {
	w := out
	w.HelpTitle("refguard run - run one case")
	w.HelpSection("Usage:")
	w.HelpUsage("refguard run --legacy-bin <path> --case <file> [--candidate-bin <path>] [--work-root <dir>] [--require-candidate]")
	printRunFlags(w)
	w.Println("")
}

func printSuiteUsage() {
	w := out
	w.HelpTitle("refguard suite - run every case in a directory")
	w.HelpSection("Usage:")
	w.HelpUsage("refguard suite --legacy-bin <path> --cases <dir> [--candidate-bin <path>] [--work-root <dir>] [--require-candidate]")
	printRunFlags(w)
	w.Println("")
}

func printValidateUsage() {
	w := out
	w.HelpTitle("refguard validate - validate case files")
	w.HelpSection("Usage:")
	w.HelpUsage("refguard validate <file|dir>...")
	w.Println("")
}
