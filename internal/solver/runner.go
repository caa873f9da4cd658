package solver

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/refguard/internal/errors"
	"github.com/AndreyAkinshin/refguard/internal/logging"
)

// Run holds what one solver invocation produced.
type Run struct {
	Dir      string        // working directory the solver ran in
	Stdout   string        // combined stdout and stderr
	Artifact string        // contents of ArtifactFileName
	Duration time.Duration // wall time of the solver process
}

// Runner executes solver binaries.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger disables diagnostic logging.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logging.OrNop(logger)}
}

// RunCase writes inputText to InputFileName inside runDir (created if
// absent), runs binary with runDir as its working directory, and reads the
// artifact it leaves behind.
//
// A non-zero exit yields a process error carrying the captured output. A
// zero exit without an artifact yields a missing-artifact error. No timeout
// is applied beyond what ctx carries.
func (r *Runner) RunCase(ctx context.Context, binary, inputText, runDir string) (*Run, error) {
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create run directory")
	}

	inputPath := filepath.Join(runDir, InputFileName)
	if err := os.WriteFile(inputPath, []byte(inputText), 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write solver input")
	}

	// #nosec G204 -- binary is an explicit operator-supplied solver path.
	cmd := exec.CommandContext(ctx, binary)
	cmd.Dir = runDir

	var captured bytes.Buffer
	cmd.Stdout = &captured
	cmd.Stderr = &captured

	r.logger.Debug("running solver",
		zap.String("binary", binary),
		zap.String("dir", runDir))

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)
	output := captured.String()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "solver interrupted")
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			r.logger.Debug("solver failed",
				zap.Int("code", exitErr.ExitCode()),
				zap.Duration("elapsed", elapsed))
			return nil, errors.Process(exitErr.ExitCode(), output)
		}
		return nil, &errors.Error{
			Kind:    errors.KindEnvironment,
			Message: fmt.Sprintf("failed to start %s: %v", binary, err),
			Cause:   err,
		}
	}

	artifactPath := filepath.Join(runDir, ArtifactFileName)
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.MissingArtifact(artifactPath)
		}
		return nil, errors.Wrap(err, "failed to read solver output")
	}
	if !utf8.Valid(data) {
		return nil, errors.Newf("solver output is not valid UTF-8: %s", artifactPath)
	}

	r.logger.Debug("solver finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("stdout_bytes", len(output)),
		zap.Int("artifact_bytes", len(data)))

	return &Run{
		Dir:      runDir,
		Stdout:   output,
		Artifact: string(data),
		Duration: elapsed,
	}, nil
}

// CheckBinary resolves path to an absolute path and verifies that it names
// an existing regular file with an execute bit set.
func CheckBinary(role, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, fmt.Sprintf("failed to resolve %s binary path", role))
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Environmentf("%s binary not found: %s", role, abs)
		}
		return "", &errors.Error{
			Kind:    errors.KindEnvironment,
			Message: fmt.Sprintf("cannot access %s binary %s: %v", role, abs, err),
			Cause:   err,
		}
	}
	if info.IsDir() {
		return "", errors.Environmentf("%s binary is a directory: %s", role, abs)
	}
	if !isExecutable(info) {
		return "", errors.Environmentf("%s binary is not executable: %s", role, abs)
	}

	return abs, nil
}
