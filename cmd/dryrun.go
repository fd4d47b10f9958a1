package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jannisp/hourglass/internal/cycle"
)

// dryRunCmd previews the day's windows without any network call
var dryRunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Preview all 24 report windows without making API calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadConfig()
		if err != nil {
			return err
		}

		day := time.Now().UTC()
		windows := cycle.DryRun(day, cfg.ReportNamePrefix)

		log.Info().Msgf("windows for %s (UTC), tenant %s", day.Format("2006-01-02"), cfg.TenantID)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Hour", "Start", "End", "Name"})
		for hour, w := range windows {
			t.AppendRow(table.Row{
				hour,
				w.Start.Format(time.RFC3339),
				w.End.Format(time.RFC3339),
				w.Name,
			})
		}
		applyTableFormat(t)
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dryRunCmd)
}
