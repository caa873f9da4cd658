// Package refguard provides public constants for CI scripts and external
// tools that invoke the refguard CLI.
package refguard

// Exit codes returned by the refguard CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates every case passed or a baseline was captured.
	ExitSuccess = 0

	// ExitFailure indicates a solver failure or an output divergence.
	ExitFailure = 1

	// ExitConfigError indicates an invalid case file or command line.
	ExitConfigError = 2

	// ExitEnvError indicates a solver binary that is missing or not executable.
	ExitEnvError = 3
)
