package project

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func p(parts ...string) string {
	return string(filepath.Separator) + filepath.Join(parts...)
}

func TestRoot(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"simple", p("a", "node_modules"), p("a"), true},
		{"nested copy", p("a", "node_modules", "nested", "node_modules"), p("a"), true},
		{"trailing separator", p("a", "node_modules") + sep, p("a"), true},
		{"at filesystem root", p("node_modules"), sep, true},
		{"relative", filepath.Join("x", "node_modules"), "x", true},
		{"prefix is not a segment", p("a", "node_modules_old"), "", false},
		{"absent", p("a", "b"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Root(tt.raw, "node_modules")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduceCollapsesSharedRoots(t *testing.T) {
	raw := []string{
		p("a", "node_modules"),
		p("b", "node_modules"),
		p("a", "node_modules", "nested", "node_modules"),
		p("c", "src"),
	}
	got := Reduce(raw, "node_modules")
	assert.Equal(t, []string{p("a"), p("b")}, got)
}

func TestReduceIsIdempotent(t *testing.T) {
	raw := []string{
		p("x", "node_modules", "y", "node_modules"),
		p("x", "node_modules"),
		p("z", "node_modules"),
	}
	once := Reduce(raw, "node_modules")

	var again []string
	for _, root := range once {
		again = append(again, TargetDir(root, "node_modules"))
	}
	twice := Reduce(again, "node_modules")

	sort.Strings(once)
	sort.Strings(twice)
	assert.Equal(t, once, twice)
}

func TestResolveDropsRootsWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	withManifest := filepath.Join(dir, "app")
	write(t, dir, "app/package.json", `{"name":"app"}`)
	write(t, dir, "bare/node_modules/x.js", "x")
	write(t, dir, "odd/package.json/keep", "a directory, not a file")
	write(t, dir, "lib/package.json", `{}`)

	roots := []string{withManifest, filepath.Join(dir, "bare"), filepath.Join(dir, "odd"), filepath.Join(dir, "lib")}
	got := Resolve(roots, "package.json")

	require.Len(t, got, 2)
	assert.LessOrEqual(t, len(got), len(roots))
	assert.Equal(t, filepath.Join(withManifest, "package.json"), got[0])
	assert.Equal(t, filepath.Join(dir, "lib", "package.json"), got[1])
	for _, m := range got {
		assert.Contains(t, roots, filepath.Dir(m))
	}
}

func TestReadName(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"declared", `{"name":"foo","version":"1.0.0"}`, "foo"},
		{"missing", `{"version":"1.0.0"}`, "proj"},
		{"empty", `{"name":""}`, "proj"},
		{"whitespace only", `{"name":"   "}`, "   "},
		{"not a string", `{"name":42}`, "proj"},
		{"array document", `[1,2,3]`, "proj"},
		{"scoped", `{"name":"@acme/web"}`, "@acme/web"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := write(t, dir, "proj/package.json", tt.content)
			m, err := Read(path, "name")
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Name)
			assert.Equal(t, filepath.Join(dir, "proj"), m.Root)
			assert.Equal(t, path, m.Path)
		})
	}
}

func TestReadMalformedIsParseError(t *testing.T) {
	for _, content := range []string{`{"name": "foo",`, ``, `not json`} {
		path := write(t, t.TempDir(), "proj/package.json", content)
		_, err := Read(path, "name")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "content %q", content)
		assert.Equal(t, path, parseErr.Path)
	}
}

func TestReadMissingFileIsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	_, err := Read(path, "name")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
