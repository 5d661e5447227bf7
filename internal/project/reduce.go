// Package project maps discovered target directories onto the projects that
// own them.
package project

import (
	"path/filepath"
	"strings"
)

// Root returns the project root owning raw: the path up to, not including,
// the first segment equal to marker. ok is false when marker is absent.
func Root(raw, marker string) (root string, ok bool) {
	clean := filepath.Clean(raw)
	vol := filepath.VolumeName(clean)
	rest := clean[len(vol):]
	sep := string(filepath.Separator)

	parts := strings.Split(rest, sep)
	for i, p := range parts {
		if p != marker {
			continue
		}
		root = strings.Join(parts[:i], sep)
		if root == "" {
			if strings.HasPrefix(rest, sep) {
				root = sep
			} else {
				root = "."
			}
		}
		return vol + root, true
	}
	return "", false
}

// Reduce collapses raw hits onto their distinct project roots. Roots keep
// the order in which they were first seen; equality is exact string match,
// symlinks are not resolved.
func Reduce(paths []string, marker string) []string {
	seen := make(map[string]struct{}, len(paths))
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		root, ok := Root(p, marker)
		if !ok {
			continue
		}
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	return roots
}

// TargetDir returns the deletable directory for a project root.
func TargetDir(root, marker string) string {
	return filepath.Join(root, marker)
}
