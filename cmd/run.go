package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jannisp/hourglass/internal/cycle"
)

// runCmd represents the normal 24-hour cycle
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full 24-hour report cycle with hourly waits",
	Long: `Creates one performance-utilization analysis per hour, each covering
the preceding hour, sleeping until the next hour boundary in between.
After the last slot, all created analyses are deleted again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCycle(cmd, cycle.ModeNormal)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
