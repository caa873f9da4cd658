// Package errors provides structured error types and exit codes for refguard.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Exit codes returned by the refguard CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (solver failed, outputs diverged, etc.)
	ExitConfigError      = 2 // Configuration error (invalid case file, bad flags, etc.)
	ExitEnvironmentError = 3 // Environment error (solver binary missing, not executable, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindProcess
	KindMissingArtifact
	KindCompare
	KindEnvironment
)

// String returns the short name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindProcess:
		return "process"
	case KindMissingArtifact:
		return "missing-artifact"
	case KindCompare:
		return "compare"
	case KindEnvironment:
		return "environment"
	default:
		return "runtime"
	}
}

// Error is the base error type for refguard.
//
// Stage is set for KindCompare errors and names the comparison stage that
// failed. Output carries captured solver output for KindProcess errors.
type Error struct {
	Kind     ErrorKind
	Stage    string
	Message  string
	Output   string
	ExitCode int // solver exit code, KindProcess only
	Cause    error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Kind == KindProcess && e.Output != "" {
		msg += "\n" + strings.TrimRight(e.Output, "\n")
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the process exit code refguard should terminate with.
func (e *Error) Code() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *Error {
	return &Error{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *Error {
	return Environment(fmt.Sprintf(format, args...))
}

// Process creates an error for a solver that exited with a non-zero code.
func Process(code int, output string) *Error {
	return &Error{
		Kind:     KindProcess,
		Message:  fmt.Sprintf("command failed with code %d", code),
		Output:   output,
		ExitCode: code,
	}
}

// MissingArtifact creates an error for an output file the solver did not produce.
func MissingArtifact(path string) *Error {
	return &Error{
		Kind:    KindMissingArtifact,
		Message: fmt.Sprintf("expected output file not found: %s", path),
	}
}

// Compare creates a stage-tagged comparison error. The message has the form
// "<stage label> compare failed: <detail>".
func Compare(stage, label, detail string) *Error {
	return &Error{
		Kind:    KindCompare,
		Stage:   stage,
		Message: fmt.Sprintf("%s compare failed: %s", label, detail),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message + ": " + err.Error(),
		Cause:   err,
	}
}

// WrapConfig wraps an error as a configuration error. Errors that already
// carry a kind keep it.
func WrapConfig(err error, message string) *Error {
	var e *Error
	if stderrors.As(err, &e) {
		return &Error{Kind: e.Kind, Stage: e.Stage, Message: message + ": " + err.Error(), Cause: err}
	}
	return &Error{
		Kind:    KindConfig,
		Message: message + ": " + err.Error(),
		Cause:   err,
	}
}

// KindOf returns the kind of the first *Error in err's chain, and false if
// there is none.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return KindRuntime, false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code()
	}
	return ExitRuntimeError
}
