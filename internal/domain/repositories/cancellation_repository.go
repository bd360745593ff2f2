package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/skillsync-team/meeting-service/internal/domain/entities"
)

// CancellationRepository defines the interface for cancellation-record access
type CancellationRepository interface {
	// FindByMeetingID retrieves the cancellation record for a meeting,
	// with the meeting association loaded
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.CancellationRecord, error)

	// Acknowledge sets the acknowledged flag and timestamp with a
	// conditional update; returns the number of rows changed so the caller
	// can distinguish a fresh acknowledgment from a repeat
	Acknowledge(ctx context.Context, meetingID uuid.UUID) (int64, error)

	// ListUnacknowledgedForUser retrieves unacknowledged cancellations
	// where the user is the counterpart (i.e. not the canceller)
	ListUnacknowledgedForUser(ctx context.Context, userID uuid.UUID) ([]*entities.CancellationRecord, error)
}
