// Package cli provides command-line interface functionality for refguard.
package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/refguard/internal/errors"
	"github.com/AndreyAkinshin/refguard/internal/output"
)

// Version is set at build time.
var Version = "dev"

// EnvCandidateBin names the candidate binary when --candidate-bin is absent.
const EnvCandidateBin = "REFGUARD_CANDIDATE_BIN"

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		out.Println("refguard %s", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "run":
		return cmdRun(cmdArgs, opts)
	case "suite":
		return cmdSuite(cmdArgs, opts)
	case "validate":
		return cmdValidate(cmdArgs)
	case "completion":
		return cmdCompletion(cmdArgs)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Errorln("  run 'refguard help' for usage")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet   bool
	Verbose bool
}

// parseGlobalFlags extracts global flags from anywhere in args.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			opts.Quiet = true
		case "-v", "--verbose":
			opts.Verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}

	if opts.Quiet && opts.Verbose {
		return nil, nil, fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	out.SetQuiet(opts.Quiet)

	return opts, remaining, nil
}

// runOptions holds the flags of the run and suite commands.
type runOptions struct {
	LegacyBin        string
	CandidateBin     string
	CasePath         string
	CasesDir         string
	WorkRoot         string
	RequireCandidate bool
}

// parseRunFlags parses "--flag value" and "--flag=value" forms. The candidate
// binary falls back to EnvCandidateBin.
func parseRunFlags(args []string, getenv func(string) string) (*runOptions, error) {
	ro := &runOptions{}
	values := map[string]*string{
		"--legacy-bin":    &ro.LegacyBin,
		"--candidate-bin": &ro.CandidateBin,
		"--case":          &ro.CasePath,
		"--cases":         &ro.CasesDir,
		"--work-root":     &ro.WorkRoot,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--require-candidate" {
			ro.RequireCandidate = true
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		dst, ok := values[name]
		if !ok {
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown flag %q", arg)
			}
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", name)
			}
			i++
			value = args[i]
		}
		if value == "" {
			return nil, fmt.Errorf("%s requires a value", name)
		}
		*dst = value
	}

	if ro.LegacyBin == "" {
		return nil, fmt.Errorf("--legacy-bin is required")
	}
	if ro.CandidateBin == "" && getenv != nil {
		ro.CandidateBin = getenv(EnvCandidateBin)
	}

	return ro, nil
}

// Help text alignment widths.
const (
	helpCommandWidth = 12
	helpFlagWidth    = 26
)

func printUsage() {
	w := out

	w.HelpTitle("refguard - differential regression harness for numerical solvers")

	w.HelpSection("Usage:")
	w.HelpUsage("refguard <command> [flags]")

	w.HelpSection("Commands:")
	w.HelpCommand("run", "Run one case against the legacy and candidate solvers", helpCommandWidth)
	w.HelpCommand("suite", "Run every case in a directory, stopping at the first failure", helpCommandWidth)
	w.HelpCommand("validate", "Validate case files without running solvers", helpCommandWidth)
	w.HelpCommand("completion", "Generate shell completion (bash, zsh, fish)", helpCommandWidth)
	w.HelpCommand("version", "Show version information", helpCommandWidth)
	w.HelpCommand("help", "Show this help", helpCommandWidth)

	printRunFlags(w)
	printGlobalFlags(w)

	w.HelpSection("Exit Codes:")
	w.HelpCommand("0", "Success", 2)
	w.HelpCommand("1", "Solver failure or output divergence", 2)
	w.HelpCommand("2", "Invalid case file or usage", 2)
	w.HelpCommand("3", "Solver binary missing or not executable", 2)
	w.Println("")
}

func printRunFlags(w *output.Writer) {
	w.HelpSection("Run Flags:")
	w.HelpFlag("--legacy-bin <path>", "Legacy solver binary (required)", helpFlagWidth)
	w.HelpFlag("--candidate-bin <path>", "Candidate solver binary; omit to capture a baseline", helpFlagWidth)
	w.HelpFlag("--case <file>", "Case file (run)", helpFlagWidth)
	w.HelpFlag("--cases <dir>", "Directory of case files (suite)", helpFlagWidth)
	w.HelpFlag("--work-root <dir>", "Work root (default build/refactor-guard/two-puncture)", helpFlagWidth)
	w.HelpFlag("--require-candidate", "Fail instead of capturing a baseline", helpFlagWidth)
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", helpFlagWidth)
	w.HelpFlag("-v, --verbose", "Diagnostic logging to stderr", helpFlagWidth)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidth)

	w.HelpSection("Environment:")
	w.HelpEnvVar(EnvCandidateBin, "Candidate binary when --candidate-bin is absent", helpFlagWidth)
}
