// Package pipeline runs the one-shot discovery scan: find target
// directories, reduce them to project roots, keep those with a manifest,
// then size and name each one.
package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lakshaymaurya-felt/nmkill/internal/config"
	"github.com/lakshaymaurya-felt/nmkill/internal/finder"
	"github.com/lakshaymaurya-felt/nmkill/internal/logging"
	"github.com/lakshaymaurya-felt/nmkill/internal/project"
	"github.com/lakshaymaurya-felt/nmkill/internal/record"
	"github.com/lakshaymaurya-felt/nmkill/internal/size"
)

// Options wires the scan's collaborators.
type Options struct {
	Target  config.Target
	Finder  finder.DirectoryFinder
	Workers int
	// Timeout bounds the directory search only; zero means no deadline.
	Timeout time.Duration
	Logger  *logging.Logger
}

// Stats summarizes one scan.
type Stats struct {
	Hits       int           `json:"hits"`
	Roots      int           `json:"roots"`
	Projects   int           `json:"projects"`
	Skipped    int           `json:"unreadable_entries"`
	TotalBytes int64         `json:"total_bytes"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// Result is the ordered record list plus its stats.
type Result struct {
	Records []record.Record `json:"records"`
	Stats   Stats           `json:"stats"`
}

var errNoFinder = errors.New("pipeline: no directory finder configured")

// Scan runs the whole pipeline. Search failures and manifest parse errors
// abort it; unreadable entries inside target directories are counted as zero.
func Scan(ctx context.Context, opts Options) (Result, error) {
	if opts.Finder == nil {
		return Result{}, errNoFinder
	}
	log := opts.Logger
	start := time.Now()
	marker := opts.Target.DirName

	findCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		findCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	hits, err := opts.Finder.Find(findCtx, marker)
	if err != nil {
		return Result{}, err
	}
	log.Debug("found %d %s directories", len(hits), marker)

	roots := project.Reduce(hits, marker)
	manifestPaths := project.Resolve(roots, opts.Target.Manifest)
	log.Debug("%d project roots, %d with %s", len(roots), len(manifestPaths), opts.Target.Manifest)

	targets := make([]string, len(manifestPaths))
	for i, p := range manifestPaths {
		targets[i] = project.TargetDir(filepath.Dir(p), marker)
	}

	var (
		sizes     []size.Result
		manifests = make([]project.Manifest, len(manifestPaths))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sizes, err = size.All(gctx, targets, opts.Workers)
		return err
	})
	g.Go(func() error {
		var errs []error
		for i, p := range manifestPaths {
			m, err := project.Read(p, opts.Target.NameField)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			manifests[i] = m
		}
		return errors.Join(errs...)
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	records, err := record.Build(manifests, sizes, marker)
	if err != nil {
		return Result{}, err
	}

	stats := Stats{
		Hits:     len(hits),
		Roots:    len(roots),
		Projects: len(records),
		Elapsed:  time.Since(start),
	}
	for i, s := range sizes {
		stats.Skipped += s.Skipped
		stats.TotalBytes += records[i].Bytes
	}
	if stats.Skipped > 0 {
		log.Debug("%d entries could not be read while sizing", stats.Skipped)
	}
	log.Debug("scan finished in %s", stats.Elapsed)

	return Result{Records: records, Stats: stats}, nil
}
