package core

import (
	"context"
	"time"
)

// TokenSource hands out a valid bearer token, refreshing transparently when
// the cached one is near expiry.
// Implementations: auth.Manager.
type TokenSource interface {
	Token(ctx context.Context) (Token, error)
}

// ReportAPI creates and deletes report resources on the monitoring platform.
// Implementations: opsramp.Client.
type ReportAPI interface {
	// CreateReport triggers a report job for the given window and returns
	// its handle.
	CreateReport(ctx context.Context, window ReportWindow) (ReportHandle, error)

	// DeleteReport removes a report by ID. Deleting a report that is already
	// gone is a successful no-op.
	DeleteReport(ctx context.Context, id string) error
}

// Clock abstracts time so tests can drive the cycle without real sleeps.
type Clock interface {
	Now() time.Time

	// Sleep blocks until d has elapsed or ctx is cancelled. It returns
	// ctx.Err() in the cancelled case and nil otherwise.
	Sleep(ctx context.Context, d time.Duration) error
}
