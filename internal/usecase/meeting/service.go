package meeting

import (
	"context"

	"github.com/google/uuid"
	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
)

// Decision is the counterpart's response to a pending meeting
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Service defines the interface for the meeting lifecycle use case
type Service interface {
	// Propose creates a pending meeting from an initiator's proposal
	Propose(ctx context.Context, input ProposeInput) (*entities.Meeting, error)

	// Respond lets the counterpart accept or reject a pending meeting
	Respond(ctx context.Context, meetingID, responderID uuid.UUID, decision Decision) (*entities.Meeting, error)

	// Cancel cancels a pending or accepted meeting and records the reason
	Cancel(ctx context.Context, meetingID, cancellerID uuid.UUID, reason string) (*entities.Meeting, error)

	// Complete retires an accepted meeting whose time has passed
	Complete(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error)

	// GetMeeting retrieves a meeting visible to the given participant
	GetMeeting(ctx context.Context, meetingID, actorID uuid.UUID) (*entities.Meeting, error)

	// ListMeetings retrieves the user's meetings with filters
	ListMeetings(ctx context.Context, userID uuid.UUID, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error)

	// Acknowledge records the counterpart's acknowledgment of a cancellation
	Acknowledge(ctx context.Context, meetingID, acknowledgerID uuid.UUID) error

	// ListUnacknowledgedCancellations retrieves unacknowledged cancellations
	// where the user is the counterpart
	ListUnacknowledgedCancellations(ctx context.Context, userID uuid.UUID) ([]*entities.CancellationRecord, error)
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)
