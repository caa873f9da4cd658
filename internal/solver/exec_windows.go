//go:build windows

package solver

import "os"

// Windows has no execute bit; exec decides by extension at start time.
func isExecutable(info os.FileInfo) bool {
	return info.Mode().IsRegular()
}
