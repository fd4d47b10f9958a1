package cycle

import (
	"context"

	"github.com/jannisp/hourglass/internal/core"
	"github.com/jannisp/hourglass/internal/logging"
)

// CleanupRunner drains a set of report IDs. One failed deletion never stops
// the remaining ones; failures are collected into the report instead.
type CleanupRunner struct {
	api core.ReportAPI
	log logging.InternalLogger
}

func NewCleanupRunner(api core.ReportAPI, log logging.InternalLogger) *CleanupRunner {
	return &CleanupRunner{api: api, log: log}
}

// Cleanup deletes every given ID unconditionally and returns the summary.
// An empty ID list is a valid, trivially successful pass.
func (r *CleanupRunner) Cleanup(ctx context.Context, ids []string) core.CleanupReport {
	report := core.CleanupReport{Failed: make(map[string]error)}

	for _, id := range ids {
		if id == "" {
			r.log.Warn("skipping ledger entry without an ID")
			continue
		}
		if err := r.api.DeleteReport(ctx, id); err != nil {
			r.log.Error("deleting report %s: %v", id, err)
			report.Failed[id] = err
			continue
		}
		report.Succeeded = append(report.Succeeded, id)
	}

	if len(report.Failed) > 0 {
		r.log.Warn("cleanup finished with %d of %d deletions failed",
			len(report.Failed), len(report.Failed)+len(report.Succeeded))
	} else {
		r.log.Info("cleanup finished, %d reports deleted", len(report.Succeeded))
	}

	return report
}
