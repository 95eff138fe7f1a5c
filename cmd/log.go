package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/agegate/internal/activity"
	"github.com/twiced-technology-gmbh/agegate/internal/clierr"
	"github.com/twiced-technology-gmbh/agegate/internal/output"
)

const defaultLogLimit = 20

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent submit outcomes",
	Long:  `Prints the newest entries of the activity log, oldest first. Use --limit 0 for all.`,
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().Int("limit", defaultLogLimit, "number of entries to show (0 for all)")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return clierr.Newf(clierr.InvalidInput, "invalid --limit %d: must be >= 0", limit)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries, err := activity.Read(cfg.Dir())
	if err != nil {
		return err
	}
	entries = tail(entries, limit)

	if outputFormat() == output.FormatJSON {
		if entries == nil {
			entries = []activity.Entry{}
		}
		return output.JSON(os.Stdout, entries)
	}

	output.ActivityTable(os.Stdout, entries)
	return nil
}

// tail returns the last n entries, or all of them when n is 0.
func tail(entries []activity.Entry, n int) []activity.Entry {
	if n == 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
