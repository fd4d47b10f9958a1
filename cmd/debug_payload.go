package cmd

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/jannisp/hourglass/internal/core"
	"github.com/jannisp/hourglass/internal/opsramp"
)

var payloadHour int

// payloadCmd dumps the exact create-analysis body for one slot, so a
// rejected payload can be compared against the API docs without a cycle run
var payloadCmd = &cobra.Command{
	Use:     "payload",
	Short:   "Dump the create-analysis payload for one hour slot",
	Example: `  hourglass debug payload --hour 9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if payloadHour < 0 || payloadHour >= core.HoursPerDay {
			return fmt.Errorf("hour must be in 0..%d", core.HoursPerDay-1)
		}

		cfg, err := f.LoadConfig()
		if err != nil {
			return err
		}

		window := core.WindowFor(time.Now().UTC(), payloadHour, cfg.ReportNamePrefix)
		payload := opsramp.BuildPayload(cfg.TenantID, reportSettings(cfg), window)
		spew.Dump(payload)
		return nil
	},
}

func init() {
	debugCmd.AddCommand(payloadCmd)

	payloadCmd.Flags().IntVar(&payloadHour, "hour", 0, "Hour slot to build the payload for (0-23)")
}
