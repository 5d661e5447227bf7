// Package size computes the on-disk footprint of target directories.
package size

import (
	"context"
	"errors"
	"io/fs"
	"math/big"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Result is the size of one directory.
type Result struct {
	Path  string
	Bytes int64
	// Skipped counts entries that could not be read and were counted as zero.
	Skipped int
}

// MB renders the size in decimal megabytes with two fractional digits.
func (r Result) MB() string {
	return FormatMB(r.Bytes)
}

// FormatMB converts bytes to decimal megabytes (1 MB = 1,000,000 bytes)
// fixed to two fractional digits. The rounding is done on the exact value of
// the float64 quotient with ties going up, so 0.125 renders as "0.13" while
// 1.005 (stored as 1.00499...) renders as "1.00".
func FormatMB(bytes int64) string {
	mb := float64(bytes) / 1_000_000
	sign := ""
	if mb < 0 {
		sign, mb = "-", -mb
	}

	r := new(big.Rat).SetFloat64(mb)
	r.Mul(r, big.NewRat(100, 1)).Add(r, big.NewRat(1, 2))
	cents := new(big.Int).Quo(r.Num(), r.Denom()).String()

	for len(cents) < 3 {
		cents = "0" + cents
	}
	return sign + cents[:len(cents)-2] + "." + cents[len(cents)-2:]
}

// Of sums the sizes of the regular files under dir. Symlinks are not
// followed or counted; unreadable entries are skipped. The only error
// returned is the context's.
func Of(ctx context.Context, dir string) (Result, error) {
	res := Result{Path: dir}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Permission denied or vanished mid-walk; skip, don't fail.
			res.Skipped++
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			res.Skipped++
			return nil
		}
		res.Bytes += info.Size()
		return nil
	})
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return Result{Path: dir}, err
	}
	return res, nil
}

// All sizes every directory concurrently, at most limit at a time (no cap
// when limit <= 0). Results are positional: results[i] belongs to dirs[i].
func All(ctx context.Context, dirs []string, limit int) ([]Result, error) {
	results := make([]Result, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, dir := range dirs {
		g.Go(func() error {
			r, err := Of(gctx, dir)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
