package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/nmkill/internal/config"
	"github.com/lakshaymaurya-felt/nmkill/internal/core"
	"github.com/lakshaymaurya-felt/nmkill/internal/finder"
	"github.com/lakshaymaurya-felt/nmkill/internal/logging"
	"github.com/lakshaymaurya-felt/nmkill/internal/pipeline"
	"github.com/lakshaymaurya-felt/nmkill/internal/purge"
)

const debugLogFile = "nmkill-debug.log"

// runPurge scans and then runs the interactive delete loop, or prints the
// static listing when stdout is not a terminal.
func runPurge(cmd *cobra.Command, cfg config.Config) error {
	if !isTerminal(os.Stdout) {
		return runStatic(cmd, cfg)
	}

	logger, closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	scan, err := newScan(cfg, logger)
	if err != nil {
		return err
	}

	model := purge.New(cmd.Context(), purge.Options{
		Version: appVersion,
		Host:    core.HostString(),
		Scan:    scan,
		Delete: func(path string) error {
			return core.SafeDelete(path, cfg.Target.DirName, cfg.DryRun)
		},
		Space:  spaceFunc(cfg),
		DryRun: cfg.DryRun,
		Logger: logger,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run interactive session: %w", err)
	}
	m, ok := final.(purge.Model)
	if !ok {
		return nil
	}
	if err := m.Err(); err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), m, cfg.DryRun)
	return nil
}

// runStatic prints the listing without any interaction.
func runStatic(cmd *cobra.Command, cfg config.Config) error {
	logger, closeLog, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	scan, err := newScan(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := scan(ctx)
	if err != nil {
		return err
	}
	purge.PrintStatic(cmd.OutOrStdout(), appVersion, res, freeSpace(cfg, logger))
	return nil
}

// newScan wires the configured finder into a pipeline run.
func newScan(cfg config.Config, logger *logging.Logger) (purge.ScanFunc, error) {
	f, err := finder.New(cfg.Strategy, finder.Options{
		Roots:    cfg.Roots,
		Excludes: cfg.Excludes,
		Workers:  cfg.Workers,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("strategy=%s roots=%v workers=%d timeout=%s", cfg.Strategy, cfg.Roots, cfg.Workers, cfg.Timeout)

	return func(ctx context.Context) (pipeline.Result, error) {
		return pipeline.Scan(ctx, pipeline.Options{
			Target:  cfg.Target,
			Finder:  f,
			Workers: cfg.Workers,
			Timeout: cfg.Timeout,
			Logger:  logger,
		})
	}, nil
}

// setupLogging routes the std logger. While the TUI owns the terminal logs go
// to a file in debug mode and nowhere otherwise; plain runs log to stderr in
// debug mode.
func setupLogging(cfg config.Config, tui bool) (*logging.Logger, func(), error) {
	noop := func() {}
	switch {
	case cfg.Debug && tui:
		f, err := tea.LogToFile(debugLogFile, "nmkill")
		if err != nil {
			return nil, noop, fmt.Errorf("open debug log: %w", err)
		}
		return logging.New(true), func() { _ = f.Close() }, nil
	case cfg.Debug:
		log.SetOutput(os.Stderr)
		return logging.New(true), noop, nil
	default:
		log.SetOutput(io.Discard)
		return logging.New(false), noop, nil
	}
}

func spaceFunc(cfg config.Config) purge.SpaceFunc {
	if len(cfg.Roots) == 0 {
		return nil
	}
	root := cfg.Roots[0]
	return func() (core.DiskSpace, error) {
		return core.FreeSpace(root)
	}
}

func freeSpace(cfg config.Config, logger *logging.Logger) *core.DiskSpace {
	fn := spaceFunc(cfg)
	if fn == nil {
		return nil
	}
	s, err := fn()
	if err != nil {
		logger.Warn("free space: %v", err)
		return nil
	}
	return &s
}

func printSummary(w io.Writer, m purge.Model, dryRun bool) {
	var n int
	var freed int64
	for _, r := range m.Records() {
		if !r.Active {
			n++
			freed += r.Bytes
		}
	}
	if n == 0 {
		return
	}
	verb := "Removed"
	if dryRun {
		verb = "Would remove"
	}
	fmt.Fprintf(w, "%s %d node_modules, %s reclaimed.\n", verb, n, core.FormatSize(freed))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
