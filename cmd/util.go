package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jannisp/hourglass/internal/core"
	"github.com/jannisp/hourglass/internal/cycle"
)

var (
	greenCheck = color.GreenString("✓")
	redCross   = color.RedString("✗")
)

func applyTableFormat(t table.Writer) {
	t.SetStyle(table.StyleLight)
}

// runCycle is the shared body of the run and burst commands.
func runCycle(cmd *cobra.Command, mode cycle.Mode) error {
	cfg, err := f.LoadConfig()
	if err != nil {
		return err
	}
	sched := f.BuildScheduler(cfg)

	// an operator interrupt cancels the hourly wait and triggers a
	// best-effort cleanup of whatever was created so far
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := sched.Run(ctx, mode)
	printCycleResult(result)

	return result.Err
}

func printCycleResult(result core.CycleResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Cycle " + result.CycleID)
	t.AppendHeader(table.Row{"ID", "Name", "Cleanup"})

	cleanedUp := func(id string) string {
		if result.Cleanup == nil {
			return "skipped"
		}
		if err, ok := result.Cleanup.Failed[id]; ok {
			return redCross + " " + truncate(err.Error(), 48)
		}
		return greenCheck + " deleted"
	}

	for _, h := range result.Created {
		t.AppendRow(table.Row{h.ID, h.Name, cleanedUp(h.ID)})
	}
	applyTableFormat(t)
	t.Render()

	if len(result.FailedHours) > 0 {
		hours := make([]int, 0, len(result.FailedHours))
		for h := range result.FailedHours {
			hours = append(hours, h)
		}
		sort.Ints(hours)
		for _, h := range hours {
			fmt.Printf("%s hour %02d failed: %v\n", redCross, h, result.FailedHours[h])
		}
	}

	if result.Cleanup == nil && len(result.Created) > 0 {
		fmt.Println(color.YellowString("cleanup did not run; delete the listed IDs manually:"))
		fmt.Printf("  hourglass cleanup %s\n", joinIDs(result.Created))
	}
}

func printCleanupReport(report core.CleanupReport) {
	for _, id := range report.Succeeded {
		fmt.Printf("%s %s\n", greenCheck, id)
	}

	ids := make([]string, 0, len(report.Failed))
	for id := range report.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("%s %s: %v\n", redCross, id, report.Failed[id])
	}
}

func joinIDs(handles []core.ReportHandle) string {
	var out string
	for i, h := range handles {
		if i > 0 {
			out += " "
		}
		out += h.ID
	}
	return out
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
