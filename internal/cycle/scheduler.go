// Package cycle drives the 24-slot daily report cycle: one report per hour,
// then an end-of-cycle cleanup of everything created along the way.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/jannisp/hourglass/internal/core"
	"github.com/jannisp/hourglass/internal/logging"
)

// State of the cycle state machine.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCleaningUp
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCleaningUp:
		return "cleaning_up"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Mode selects how the cycle traverses its 24 slots.
type Mode int

const (
	// ModeNormal sleeps until the next hour boundary between slots.
	ModeNormal Mode = iota

	// ModeBurst advances immediately, with only a small pause against rate
	// limiting. Used for back-filling and testing.
	ModeBurst
)

// maxConsecutiveAuthFailures is how many hours in a row may fail with an
// AuthError before the cycle gives up. A single failure at the two-hour
// token boundary is expected noise; hitting it repeatedly means the
// credentials are gone.
const maxConsecutiveAuthFailures = 3

// interruptedCleanupTimeout bounds the best-effort cleanup after the run
// context was cancelled.
const interruptedCleanupTimeout = 5 * time.Minute

// Scheduler owns one cycle traversal: the slot loop, the append-only ledger
// of created reports, and the end-of-cycle cleanup.
//
// A Scheduler is single-owner state driven by one goroutine; the ledger and
// state field are unguarded on purpose. Parallel report creation would
// require locking both this and the token cache.
type Scheduler struct {
	api        core.ReportAPI
	clock      core.Clock
	prefix     string
	burstPause time.Duration
	log        logging.InternalLogger

	state  State
	ledger []core.ReportHandle
}

type Option func(*Scheduler)

// WithBurstPause sets the inter-slot pause used in burst mode.
func WithBurstPause(d time.Duration) Option {
	return func(s *Scheduler) {
		s.burstPause = d
	}
}

func WithLogger(l logging.InternalLogger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

func New(api core.ReportAPI, clock core.Clock, prefix string, opts ...Option) *Scheduler {
	s := &Scheduler{
		api:        api,
		clock:      clock,
		prefix:     prefix,
		burstPause: 2 * time.Second,
		log:        logging.NewZLogger(log.Logger),
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) State() State {
	return s.state
}

// Ledger returns a copy of the reports created so far this cycle.
func (s *Scheduler) Ledger() []core.ReportHandle {
	cpy := make([]core.ReportHandle, len(s.ledger))
	copy(cpy, s.ledger)
	return cpy
}

// Run executes the full cycle for the current UTC day: create one report per
// slot, then delete everything in the ledger.
//
// Per-slot failures are isolated; they are recorded in the result and the
// cycle moves on. Only repeated authentication failure halts the cycle,
// leaving the ledger in the result for manual cleanup. Cancelling ctx during
// a wait interrupts the slot loop and still drains the ledger best-effort.
func (s *Scheduler) Run(ctx context.Context, mode Mode) core.CycleResult {
	day := s.clock.Now()
	result := core.CycleResult{
		CycleID:     xid.New().String(),
		Day:         day,
		FailedHours: make(map[int]error),
	}

	s.state = StateRunning
	s.log.Info("starting report cycle %s for %s", result.CycleID, day.Format("2006-01-02"))

	interrupted := false
	consecutiveAuthFailures := 0

slots:
	for hour := 0; hour < core.HoursPerDay; hour++ {
		window := core.WindowFor(day, hour, s.prefix)
		s.log.Info("hour %02d/23: window %s -> %s name=%q",
			hour,
			window.Start.Format(time.RFC3339),
			window.End.Format(time.RFC3339),
			window.Name,
		)

		handle, err := s.api.CreateReport(ctx, window)
		switch {
		case err == nil:
			s.ledger = append(s.ledger, handle)
			consecutiveAuthFailures = 0
		default:
			// this hour is lost, the next one is independent
			s.log.Error("creating report for hour %d: %v", hour, err)
			result.FailedHours[hour] = err

			var authErr *core.AuthError
			if errors.As(err, &authErr) {
				consecutiveAuthFailures++
				if consecutiveAuthFailures >= maxConsecutiveAuthFailures {
					s.state = StateError
					result.Created = s.Ledger()
					result.Err = fmt.Errorf("halting cycle after %d consecutive authentication failures: %w",
						consecutiveAuthFailures, err)
					s.log.Error("%v; %d reports remain for manual cleanup", result.Err, len(s.ledger))
					return result
				}
			} else {
				consecutiveAuthFailures = 0
			}
		}

		if ctx.Err() != nil {
			interrupted = true
			break slots
		}
		if hour == core.HoursPerDay-1 {
			break slots
		}

		var waitErr error
		switch mode {
		case ModeNormal:
			waitErr = s.sleepUntilNextHour(ctx, day, hour)
		case ModeBurst:
			waitErr = s.clock.Sleep(ctx, s.burstPause)
		}
		if waitErr != nil {
			s.log.Warn("cycle interrupted during hour %d: %v", hour, waitErr)
			interrupted = true
			break slots
		}
	}

	s.state = StateCleaningUp
	s.log.Info("cycle complete, cleaning up %d reports", len(s.ledger))

	cleanupCtx := ctx
	if interrupted {
		// the run context is already cancelled; the drain still gets a
		// bounded chance so created reports are never silently lost
		var cancel context.CancelFunc
		cleanupCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), interruptedCleanupTimeout)
		defer cancel()
	}

	report := NewCleanupRunner(s.api, s.log).Cleanup(cleanupCtx, handleIDs(s.ledger))

	result.Created = s.Ledger()
	result.Cleanup = &report
	if interrupted {
		result.Err = context.Cause(ctx)
	}

	s.state = StateDone
	return result
}

// CleanupOnly skips the slot loop entirely and drains an externally supplied
// ID list, for manual invocations.
func (s *Scheduler) CleanupOnly(ctx context.Context, ids []string) core.CleanupReport {
	s.state = StateCleaningUp
	report := NewCleanupRunner(s.api, s.log).Cleanup(ctx, ids)
	s.state = StateDone
	return report
}

func (s *Scheduler) sleepUntilNextHour(ctx context.Context, day time.Time, hour int) error {
	y, m, d := day.UTC().Date()
	next := time.Date(y, m, d, hour+1, 0, 0, 0, time.UTC)

	wait := next.Sub(s.clock.Now())
	if wait <= 0 {
		s.log.Warn("already past the %02d:00 boundary, continuing", hour+1)
		return nil
	}

	s.log.Info("sleeping %s until the next hour", wait.Round(time.Second))
	return s.clock.Sleep(ctx, wait)
}

// DryRun computes all 24 windows of day without touching the network, for
// operator preview.
func DryRun(day time.Time, prefix string) []core.ReportWindow {
	return core.DayWindows(day, prefix)
}

func handleIDs(handles []core.ReportHandle) []string {
	ids := make([]string, 0, len(handles))
	for _, h := range handles {
		ids = append(ids, h.ID)
	}
	return ids
}
