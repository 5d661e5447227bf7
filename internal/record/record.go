// Package record holds the display/deletion units produced by a scan.
package record

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lakshaymaurya-felt/nmkill/internal/project"
	"github.com/lakshaymaurya-felt/nmkill/internal/size"
)

// nameColumn is the width the display name is padded to.
const nameColumn = 37

// Record is one project's deletable dependency directory.
type Record struct {
	DisplayName string `json:"name"`
	TargetDir   string `json:"path"`
	Bytes       int64  `json:"bytes"`
	SizeMB      string `json:"size_mb"`
	Active      bool   `json:"active"`
}

// Label is the menu line for the record: the name padded to a fixed column
// followed by the size. Deleted records get a check mark in place of the indent.
func (r Record) Label() string {
	name := r.DisplayName
	pad := nameColumn - runewidth.StringWidth(name)
	if pad < 1 {
		pad = 1
	}
	body := name + strings.Repeat(" ", pad) + r.SizeMB + " MB"
	if !r.Active {
		return "✔ " + body
	}
	return "  " + body
}

// Build zips manifests with their sizes by position: records[i] is built
// from manifests[i] and sizes[i].
func Build(manifests []project.Manifest, sizes []size.Result, marker string) ([]Record, error) {
	if len(manifests) != len(sizes) {
		return nil, fmt.Errorf("build records: %d manifests but %d sizes", len(manifests), len(sizes))
	}
	records := make([]Record, len(manifests))
	for i, m := range manifests {
		records[i] = Record{
			DisplayName: m.Name,
			TargetDir:   project.TargetDir(m.Root, marker),
			Bytes:       sizes[i].Bytes,
			SizeMB:      sizes[i].MB(),
			Active:      true,
		}
	}
	return records, nil
}
