package finder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lakshaymaurya-felt/nmkill/internal/logging"
)

// maxWarnings caps how many unreadable directories are remembered.
const maxWarnings = 500

// Native walks the filesystem in-process with bounded concurrent reads.
type Native struct {
	roots    []string
	excludes []string
	sem      chan struct{}
	log      *logging.Logger

	mu       sync.Mutex
	warnings []string
	visited  atomic.Int64
}

// NewNative creates a native walker. Workers bounds concurrent ReadDir calls.
func NewNative(opts Options) *Native {
	workers := opts.Workers
	if workers <= 0 {
		workers = 8
	}
	return &Native{
		roots:    opts.Roots,
		excludes: opts.Excludes,
		sem:      make(chan struct{}, workers),
		log:      opts.Logger,
	}
}

// Warnings returns the directories that could not be read during the last scan.
func (n *Native) Warnings() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.warnings...)
}

// Visited returns the number of directories read so far.
func (n *Native) Visited() int64 {
	return n.visited.Load()
}

func (n *Native) addWarning(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.warnings) < maxWarnings {
		n.warnings = append(n.warnings, msg)
	}
}

// Find walks every root and collects directories named name. Matched
// directories are not descended into: anything nested below them belongs
// to the same project root. Symlinks and reparse points are never followed.
func (n *Native) Find(ctx context.Context, name string) ([]string, error) {
	if len(n.roots) == 0 {
		return nil, scanFailed(errors.New("no scan roots configured"))
	}

	n.mu.Lock()
	n.warnings = nil
	n.mu.Unlock()
	n.visited.Store(0)

	var (
		mu    sync.Mutex
		found []string
	)
	emit := func(p string) {
		mu.Lock()
		found = append(found, p)
		mu.Unlock()
	}

	for _, root := range n.roots {
		root = filepath.Clean(root)
		info, err := os.Lstat(root)
		if err != nil {
			return nil, scanFailed(err)
		}
		if !info.IsDir() {
			return nil, scanFailed(fmt.Errorf("scan root %s is not a directory", root))
		}
		if info.Name() == name {
			emit(root)
			continue
		}
		n.walkDir(ctx, root, name, emit)
	}

	if err := ctx.Err(); err != nil {
		return nil, scanFailed(err)
	}

	sort.Strings(found)
	n.log.Debug("walked %d directories, %d matches, %d unreadable", n.Visited(), len(found), len(n.Warnings()))
	return found, nil
}

// walkDir holds the semaphore only during ReadDir so nested goroutines
// cannot deadlock waiting on their parents.
func (n *Native) walkDir(ctx context.Context, dir, name string, emit func(string)) {
	if ctx.Err() != nil {
		return
	}

	n.sem <- struct{}{}
	entries, err := os.ReadDir(dir)
	<-n.sem
	n.visited.Add(1)

	if err != nil {
		n.addWarning("cannot read " + dir + ": " + err.Error())
		return
	}

	var wg sync.WaitGroup
	for _, e := range entries {
		// DirEntry type bits come from lstat, so symlinked dirs report !IsDir.
		if !e.IsDir() {
			continue
		}
		child := filepath.Join(dir, e.Name())
		if n.excluded(child) {
			continue
		}
		if isReparsePoint(child) {
			continue
		}
		if e.Name() == name {
			emit(child)
			continue
		}

		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			n.walkDir(ctx, p, name, emit)
		}(child)
	}
	wg.Wait()
}

func (n *Native) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range n.excludes {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}
