//go:build !windows

package elevation

import "os"

// Elevated reports whether the process runs as root.
func Elevated() bool {
	return os.Geteuid() == 0
}
