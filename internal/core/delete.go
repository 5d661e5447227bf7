package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lakshaymaurya-felt/nmkill/internal/config"
)

var (
	// ErrNotTarget is returned for paths that are not a target directory.
	ErrNotTarget = errors.New("not a dependency directory")
	// ErrProtected is returned for paths on the never-delete list.
	ErrProtected = errors.New("path is protected")
	// ErrRelative is returned for paths that are not absolute.
	ErrRelative = errors.New("path is not absolute")
)

// DeleteError reports a failed removal. The record stays active.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

// SafeDelete recursively removes path, which must be an absolute directory
// named marker outside the never-delete list. A target that no longer exists
// counts as removed. In dryRun mode nothing is touched.
func SafeDelete(path, marker string, dryRun bool) error {
	clean := filepath.Clean(path)

	if !filepath.IsAbs(clean) {
		return &DeleteError{Path: path, Err: ErrRelative}
	}
	if filepath.Base(clean) != marker {
		return &DeleteError{Path: clean, Err: ErrNotTarget}
	}
	if IsProtected(clean) {
		return &DeleteError{Path: clean, Err: ErrProtected}
	}
	if dryRun {
		return nil
	}

	if _, err := os.Lstat(clean); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.RemoveAll(clean); err != nil {
		return &DeleteError{Path: clean, Err: err}
	}
	return nil
}

// IsProtected reports whether path is one of the never-delete paths.
func IsProtected(path string) bool {
	clean := filepath.Clean(path)
	for _, p := range config.NeverDeletePaths() {
		if runtime.GOOS == "windows" {
			if strings.EqualFold(clean, p) {
				return true
			}
			continue
		}
		if clean == p {
			return true
		}
	}
	return false
}
