package core

import "time"

// NominalTokenLifetime is how long the platform's bearer tokens live.
// The token endpoint reports the exact value per exchange; this constant is
// the fallback and the upper bound the refresh margin is validated against.
const NominalTokenLifetime = 7199 * time.Second

// HoursPerDay is the number of report slots in one cycle.
const HoursPerDay = 24

// Credentials identify the OAuth client and the target tenant.
// Built once from configuration at startup, never mutated.
type Credentials struct {
	BaseURL      string
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Token is the artifact of a successful client-credentials exchange.
// Tokens are replaced on refresh, never mutated or pooled.
type Token struct {
	// Value is the opaque bearer token string.
	Value string

	// IssuedAt is when the exchange completed (client clock).
	IssuedAt time.Time

	// ExpiresAt is IssuedAt plus the lifetime reported by the token endpoint.
	ExpiresAt time.Time
}

// Stale reports whether the token must be treated as expired at now.
// A token goes stale margin before its actual expiry so that no request
// issued with it can run into the boundary mid-flight.
func (t Token) Stale(now time.Time, margin time.Duration) bool {
	if t.Value == "" {
		return true
	}
	return !now.Before(t.ExpiresAt.Add(-margin))
}

// ReportWindow is the one-hour lookback window of a single cycle slot,
// together with the report name derived from it.
type ReportWindow struct {
	Start time.Time
	End   time.Time
	Name  string
}

// ReportHandle identifies a report created during a cycle.
type ReportHandle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CleanupReport summarizes a cleanup pass. Individual delete failures are
// collected here instead of aborting the pass.
type CleanupReport struct {
	Succeeded []string
	Failed    map[string]error
}

// AllSucceeded reports whether every attempted deletion went through.
func (r CleanupReport) AllSucceeded() bool {
	return len(r.Failed) == 0
}

// CycleResult is the outcome of one full cycle traversal.
type CycleResult struct {
	// CycleID tags all log output of this traversal.
	CycleID string

	// Day is the UTC day the cycle ran for.
	Day time.Time

	// Created is the ledger of reports created this cycle, in hour order.
	Created []ReportHandle

	// FailedHours maps hour index to the error that prevented its report.
	FailedHours map[int]error

	// Cleanup is the end-of-cycle cleanup summary. Nil when the cycle was
	// halted before cleanup could run; Created then lists what the operator
	// has to remove manually.
	Cleanup *CleanupReport

	// Err is the error that halted or interrupted the cycle, nil on a
	// normal run to completion.
	Err error
}
