// Package finder locates dependency-cache directories on the host.
package finder

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/lakshaymaurya-felt/nmkill/internal/config"
	"github.com/lakshaymaurya-felt/nmkill/internal/logging"
)

// ErrScanUnsupported is returned when the host has no known search strategy.
var ErrScanUnsupported = errors.New("directory search is not supported on this platform")

// ScanFailedError wraps any error raised by the underlying search. The result
// of a failed scan is never partially trusted.
type ScanFailedError struct {
	Cause error
}

func (e *ScanFailedError) Error() string {
	return "scan failed: " + e.Cause.Error()
}

func (e *ScanFailedError) Unwrap() error {
	return e.Cause
}

func scanFailed(err error) error {
	return &ScanFailedError{Cause: err}
}

// DirectoryFinder returns every directory named name beneath its roots.
// The returned slice is complete; nothing is streamed.
type DirectoryFinder interface {
	Find(ctx context.Context, name string) ([]string, error)
}

// Options configures a DirectoryFinder.
type Options struct {
	Roots    []string
	Excludes []string
	Workers  int
	Logger   *logging.Logger
}

// New returns the finder for the given strategy on this host.
func New(strategy string, opts Options) (DirectoryFinder, error) {
	switch strategy {
	case config.StrategyNative, "":
		return NewNative(opts), nil
	case config.StrategyCommand:
		return NewCommand(runtime.GOOS, opts)
	default:
		return nil, fmt.Errorf("unknown search strategy %q", strategy)
	}
}
