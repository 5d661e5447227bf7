package main

import (
	"fmt"
	"os"

	"github.com/lakshaymaurya-felt/nmkill/cmd"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nmkill:", err)
		os.Exit(1)
	}
}
