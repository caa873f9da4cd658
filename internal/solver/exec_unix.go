//go:build !windows

package solver

import "os"

func isExecutable(info os.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
