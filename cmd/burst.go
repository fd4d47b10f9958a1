package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jannisp/hourglass/internal/cycle"
)

// burstCmd creates all 24 analyses immediately, for back-filling or testing
var burstCmd = &cobra.Command{
	Use:   "burst",
	Short: "Create all 24 hourly analyses immediately, no hourly waits",
	Long: `Runs the same cycle as "run" but without sleeping between slots,
pausing only briefly against rate limiting. Useful for back-filling a
past day or testing the configuration end to end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCycle(cmd, cycle.ModeBurst)
	},
}

func init() {
	rootCmd.AddCommand(burstCmd)
}
