package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/skillsync-team/meeting-service/internal/domain/entities"
)

// LedgerRepository defines the interface for reminder-ledger data access.
// The ledger provides the at-most-once guarantee for reminder delivery;
// MarkNotified must be an atomic check-and-set at the storage layer so
// overlapping sweep invocations cannot double-record a participant.
type LedgerRepository interface {
	// GetStatus retrieves the ledger entry for a meeting. An absent entry
	// is returned as (nil, nil) and is equivalent to both flags false.
	GetStatus(ctx context.Context, meetingID uuid.UUID) (*entities.ReminderLedger, error)

	// MarkNotified creates the entry if absent, then flips the given
	// participant's flag with a conditional update. Calling it again for an
	// already-true flag is a no-op, not an error. The two flags are
	// independent; marking one never blocks marking the other.
	MarkNotified(ctx context.Context, meetingID uuid.UUID, party entities.Party) error
}
