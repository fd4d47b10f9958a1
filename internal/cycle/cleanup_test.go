package cycle

import (
	"context"
	"fmt"
	"testing"

	"github.com/jannisp/hourglass/internal/core"
	"github.com/jannisp/hourglass/internal/logging"
)

func TestCleanupRunner_OneFailureDoesNotAbort(t *testing.T) {
	ids := make([]string, 0, 24)
	for i := 0; i < 24; i++ {
		ids = append(ids, fmt.Sprintf("an-%03d", i))
	}

	api := &fakeAPI{
		deleteErrs: map[string]error{"an-005": &core.APIError{Status: 500, Body: "boom"}},
	}
	runner := NewCleanupRunner(api, logging.Nop{})

	report := runner.Cleanup(context.Background(), ids)

	if len(report.Succeeded) != 23 {
		t.Errorf("succeeded = %d, want 23", len(report.Succeeded))
	}
	if len(report.Failed) != 1 {
		t.Fatalf("failed = %v, want exactly an-005", report.Failed)
	}
	if _, ok := report.Failed["an-005"]; !ok {
		t.Errorf("failed = %v, want an-005 in the failure set", report.Failed)
	}
	// every ID after the failing one was still attempted
	if len(api.deleted) != 23 {
		t.Errorf("attempted deletions = %d, want 23", len(api.deleted))
	}
}

func TestCleanupRunner_EmptyListIsTriviallySuccessful(t *testing.T) {
	api := &fakeAPI{}
	report := NewCleanupRunner(api, logging.Nop{}).Cleanup(context.Background(), nil)

	if !report.AllSucceeded() {
		t.Errorf("report = %+v, want trivially successful", report)
	}
	if len(report.Succeeded) != 0 {
		t.Errorf("succeeded = %v, want empty", report.Succeeded)
	}
}

func TestCleanupRunner_SkipsEmptyIDs(t *testing.T) {
	api := &fakeAPI{}
	report := NewCleanupRunner(api, logging.Nop{}).Cleanup(context.Background(), []string{"an-001", "", "an-002"})

	if len(report.Succeeded) != 2 {
		t.Errorf("succeeded = %v, want the two real IDs", report.Succeeded)
	}
	if len(report.Failed) != 0 {
		t.Errorf("failed = %v, want none", report.Failed)
	}
	if len(api.deleted) != 2 {
		t.Errorf("attempted deletions = %d, want 2", len(api.deleted))
	}
}
