package core

import "github.com/dustin/go-humanize"

// FormatSize returns a human-readable size in decimal units (e.g. "2.0 MB").
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}
