package cmd

import (
	"encoding/json"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/nmkill/internal/purge"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List node_modules directories without deleting anything",
	Long:  "Scan once and print every project's node_modules with its size, then exit.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

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

		if listJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		purge.PrintStatic(cmd.OutOrStdout(), appVersion, res, freeSpace(cfg, logger))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the records and scan stats as JSON")
}
