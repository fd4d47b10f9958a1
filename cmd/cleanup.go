package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cleanupCmd deletes analyses by ID, for manual cleanup after an
// interrupted or halted cycle
var cleanupCmd = &cobra.Command{
	Use:     "cleanup <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete specific analysis IDs",
	Example: `  hourglass cleanup an-123 an-124 an-125`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadConfig()
		if err != nil {
			return err
		}
		sched := f.BuildScheduler(cfg)

		report := sched.CleanupOnly(cmd.Context(), args)
		printCleanupReport(report)

		if !report.AllSucceeded() {
			return fmt.Errorf("%d of %d deletions failed", len(report.Failed), len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
