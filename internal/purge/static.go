package purge

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lakshaymaurya-felt/nmkill/internal/core"
	"github.com/lakshaymaurya-felt/nmkill/internal/pipeline"
)

// PrintStatic writes a plain-text listing of a scan. Used when stdout is not
// a terminal and the interactive loop cannot run. space may be nil.
func PrintStatic(w io.Writer, version string, res pipeline.Result, space *core.DiskSpace) {
	rule := "  " + strings.Repeat("-", 58)

	fmt.Fprintf(w, "  nmkill(%s)\n", version)
	fmt.Fprintln(w, rule)

	if len(res.Records) == 0 {
		fmt.Fprintln(w, "  No node_modules with a package.json found.")
	}
	for i, r := range res.Records {
		fmt.Fprintf(w, "%3d.%s\n", i+1, r.Label())
		fmt.Fprintf(w, "        %s\n", r.TargetDir)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Projects: %d   Total: %s   Scan: %s\n",
		len(res.Records), core.FormatSize(res.Stats.TotalBytes), res.Stats.Elapsed.Round(time.Millisecond))
	if res.Stats.Skipped > 0 {
		fmt.Fprintf(w, "  Unreadable entries: %d\n", res.Stats.Skipped)
	}
	if space != nil {
		fmt.Fprintf(w, "  Free space on %s: %s of %s\n",
			space.Path, humanize.Bytes(space.Free), humanize.Bytes(space.Total))
	}
}
