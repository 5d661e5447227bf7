package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("not valid JSON")

// ParseError reports a manifest that exists but cannot be read or parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Manifest is the part of a project manifest the listing needs.
type Manifest struct {
	// Path is the manifest file itself.
	Path string
	// Root is the directory holding the manifest.
	Root string
	// Name is the declared name, or the root's base name when none is declared.
	Name string
}

// Resolve returns the manifest path for every root that has one, in the
// order of roots. Roots without a manifest are dropped.
func Resolve(roots []string, manifest string) []string {
	paths := make([]string, 0, len(roots))
	for _, root := range roots {
		p := filepath.Join(root, manifest)
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}

// Read loads the manifest at path. A missing, empty or non-string name field
// falls back to the root's base name; unreadable or malformed JSON is a
// *ParseError.
func Read(path, nameField string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, &ParseError{Path: path, Err: err}
	}
	if !gjson.ValidBytes(data) {
		return Manifest{}, &ParseError{Path: path, Err: errInvalidJSON}
	}

	root := filepath.Dir(path)
	m := Manifest{Path: path, Root: root, Name: FallbackName(root)}

	res := gjson.GetBytes(data, nameField)
	if res.Type == gjson.String && res.Str != "" {
		m.Name = res.Str
	}
	return m, nil
}

// FallbackName derives a display name from the last element of root.
func FallbackName(root string) string {
	return filepath.Base(root)
}
