// Package cases loads directories of case files for suite runs.
package cases

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AndreyAkinshin/refguard/internal/config"
	"github.com/AndreyAkinshin/refguard/internal/errors"
)

// Loaded is a validated case together with its load warnings.
type Loaded struct {
	Case     *config.Case
	Warnings []string
}

// FindFiles returns the case files directly inside dir, sorted by path.
// Subdirectories are not searched.
func FindFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Configf("case directory not found: %s", dir)
		}
		return nil, errors.WrapConfig(err, "failed to read case directory")
	}
	if !info.IsDir() {
		return nil, errors.Configf("not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapConfig(err, "failed to read case directory")
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !config.IsCaseFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// LoadDir loads and validates every case file in dir. Cases are returned
// sorted by name; two files declaring the same name are rejected.
func LoadDir(dir string) ([]Loaded, error) {
	files, err := FindFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Configf("no case files found in %s", dir)
	}

	loaded := make([]Loaded, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, path := range files {
		l, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[l.Case.Name]; dup {
			return nil, errors.Configf("duplicate case name %q in %s and %s", l.Case.Name, prev, path)
		}
		seen[l.Case.Name] = path
		loaded = append(loaded, *l)
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].Case.Name < loaded[j].Case.Name
	})

	return loaded, nil
}

// LoadFile loads and validates a single case file. Every failure is a
// configuration error naming the file.
func LoadFile(path string) (*Loaded, error) {
	c, warnings, err := config.LoadAndValidate(path)
	if err != nil {
		return nil, errors.WrapConfig(err, fmt.Sprintf("case %s", path))
	}
	return &Loaded{Case: c, Warnings: warnings}, nil
}
