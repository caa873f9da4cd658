// Package integration contains integration tests for refguard.
package integration

import (
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/AndreyAkinshin/refguard/internal/cases"
	"github.com/AndreyAkinshin/refguard/internal/config"
	"github.com/AndreyAkinshin/refguard/internal/errors"
	"github.com/AndreyAkinshin/refguard/internal/solver"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

func TestFixtureSuite(t *testing.T) {
	t.Parallel()

	loaded, err := cases.LoadDir(filepath.Join(fixturesDir(), "cases"))
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(loaded) < 5 {
		t.Fatalf("fixture suite has %d cases, want at least 5", len(loaded))
	}

	for _, l := range loaded {
		c := l.Case
		t.Run(c.Name, func(t *testing.T) {
			if len(l.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", l.Warnings)
			}
			if missing := c.Params.MissingKeys(); len(missing) != 0 {
				t.Errorf("missing params: %v", missing)
			}
			for _, key := range []string{"nA", "nB"} {
				if c.Params[key] < config.MinGridResolution {
					t.Errorf("params.%s = %v, want >= %d", key, c.Params[key], config.MinGridResolution)
				}
			}

			raw, err := config.Load(c.Path)
			if err != nil {
				t.Fatal(err)
			}
			if raw.Name == "" {
				t.Error("fixture cases must name themselves")
			}
			if raw.IgnoreLinePatterns == nil {
				t.Error("fixture cases must list ignore_line_patterns explicitly")
			}

			if _, err := solver.BuildInputText(c.Params); err != nil {
				t.Errorf("BuildInputText() error = %v", err)
			}
		})
	}
}

func TestInvalidFixtures(t *testing.T) {
	t.Parallel()

	files, err := filepath.Glob(filepath.Join(fixturesDir(), "invalid", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no invalid fixtures found")
	}

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			t.Parallel()
			_, err := cases.LoadFile(path)
			if err == nil {
				t.Fatal("expected invalid fixture to be rejected")
			}
			if got := errors.GetExitCode(err); got != errors.ExitConfigError {
				t.Errorf("exit code = %d, want %d", got, errors.ExitConfigError)
			}
		})
	}
}
