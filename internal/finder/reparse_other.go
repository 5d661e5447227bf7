//go:build !windows

package finder

// isReparsePoint is a Windows concept; symlinks are already skipped by type.
func isReparsePoint(string) bool {
	return false
}
