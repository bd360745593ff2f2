package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines the interface for the reminder sweep use case
type Service interface {
	// Run executes one sweep: select due meetings, consult the ledger, and
	// dispatch reminders. Partial failure is reported in the result, never
	// as an error; only setup failures (store unreachable) return an error.
	Run(ctx context.Context) (*Result, error)
}

// Lease serializes overlapping sweep invocations. Acquire reports whether
// this invocation holds the lease; a held lease means another sweep is
// still running and this one should short-circuit.
type Lease interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context)
}

// Result aggregates the outcome of one sweep invocation
type Result struct {
	SweepID        uuid.UUID     `json:"sweep_id"`
	Examined       int           `json:"examined"`
	Skipped        int           `json:"skipped"`
	RemindersSent  int           `json:"reminders_sent"`
	Errors         []string      `json:"errors,omitempty"`
	SkippedByLease bool          `json:"skipped_by_lease,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
}

// Summary returns a human-readable one-line account of the sweep
func (r *Result) Summary() string {
	if r.SkippedByLease {
		return "sweep skipped: another sweep is still running"
	}
	return fmt.Sprintf(
		"examined %d meeting(s), skipped %d, sent %d reminder(s), %d error(s)",
		r.Examined, r.Skipped, r.RemindersSent, len(r.Errors),
	)
}

// Ensure Sweeper implements Service interface
var _ Service = (*Sweeper)(nil)
