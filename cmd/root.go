package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/nmkill/internal/config"
)

var (
	// Global flags
	debug    bool
	dryRun   bool
	strategy string
	timeout  time.Duration
	workers  int

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "nmkill",
	Short: "Find and remove node_modules directories",
	Long: `nmkill - find and remove node_modules directories.

Searches every local drive for node_modules directories that belong to a
project with a package.json, sizes them, and lets you pick which ones to
delete.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runPurge(cmd, cfg)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaults := config.Default()

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "Write detailed operation logs to nmkill-debug.log")
	flags.BoolVar(&dryRun, "dry-run", false, "Confirm deletions without removing anything")
	flags.StringVar(&strategy, "strategy", defaults.Strategy, "Directory search strategy: native or command")
	flags.DurationVar(&timeout, "timeout", defaults.Timeout, "Deadline for the directory search (0 disables it)")
	flags.IntVar(&workers, "workers", defaults.Workers, "Maximum concurrent directory reads and size computations")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig layers explicitly set flags over config.Load.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	return cfg, cfg.Validate()
}
