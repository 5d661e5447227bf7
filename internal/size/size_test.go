package size

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeN(t *testing.T, root, rel string, n int) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(strings.Repeat("x", n)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFormatMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00"},
		{999, "0.00"},
		{10_000, "0.01"},
		{1_000_000, "1.00"},
		{2_000_000, "2.00"},
		{1_234_567, "1.23"},
		{1_048_576, "1.05"},
		{123_456_789_000, "123456.79"},
		{125_000, "0.13"},
		{625_000, "0.63"},
		{1_125_000, "1.13"},
		{1_005_000, "1.00"},
		{5_000, "0.01"},
		{-2_500_000, "-2.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMB(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestOfEmptyDirectory(t *testing.T) {
	r, err := Of(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, int64(0), r.Bytes)
	assert.Equal(t, "0.00", r.MB())
}

func TestOfSumsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	writeN(t, dir, "a.js", 1_500_000)
	writeN(t, dir, "pkg/lib/b.js", 400_000)
	writeN(t, dir, "pkg/c.json", 100_000)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	r, err := Of(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000), r.Bytes)
	assert.Equal(t, "2.00", r.MB())
	assert.Zero(t, r.Skipped)
}

func TestOfDoesNotFollowSymlinks(t *testing.T) {
	outside := t.TempDir()
	writeN(t, outside, "big.bin", 5_000_000)

	dir := t.TempDir()
	writeN(t, dir, "small.js", 1_000)
	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "big.bin"), filepath.Join(dir, "big.bin")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	r, err := Of(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000), r.Bytes)
}

func TestOfMissingDirectoryIsLoose(t *testing.T) {
	r, err := Of(context.Background(), filepath.Join(t.TempDir(), "gone"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), r.Bytes)
	assert.Equal(t, 1, r.Skipped)
}

func TestOfCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Of(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAllIsPositional(t *testing.T) {
	root := t.TempDir()
	sizes := []int{3_000_000, 10, 0, 750_000}
	var dirs []string
	for i, n := range sizes {
		d := filepath.Join(root, string(rune('a'+i)))
		require.NoError(t, os.MkdirAll(d, 0o755))
		if n > 0 {
			writeN(t, d, "f.bin", n)
		}
		dirs = append(dirs, d)
	}

	for _, limit := range []int{0, 1, 2} {
		got, err := All(context.Background(), dirs, limit)
		require.NoError(t, err)
		require.Len(t, got, len(dirs))
		for i, r := range got {
			assert.Equal(t, dirs[i], r.Path)
			assert.Equal(t, int64(sizes[i]), r.Bytes)
		}
	}
}

func TestAllEmpty(t *testing.T) {
	got, err := All(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}
