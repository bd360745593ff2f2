package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skillsync-team/meeting-service/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// Update updates an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// CancelWithRecord persists the transition to cancelled and creates the
	// cancellation record in a single transaction
	CancelWithRecord(ctx context.Context, meeting *entities.Meeting, record *entities.CancellationRecord) error

	// FindDueAccepted retrieves accepted meetings whose scheduled time falls
	// in [from, to], both bounds inclusive
	FindDueAccepted(ctx context.Context, from, to time.Time) ([]*entities.Meeting, error)

	// List retrieves meetings with filters and pagination
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	ParticipantID *uuid.UUID
	State         *entities.MeetingState
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
	SortBy        string // "created_at", "scheduled_time"
	SortOrder     string // "asc", "desc"
}
