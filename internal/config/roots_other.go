//go:build !windows

package config

// ScanRoots returns the filesystem root; excludes prune the virtual trees.
func ScanRoots() []string {
	return []string{"/"}
}
