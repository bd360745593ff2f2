package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Initiator").
		Preload("Counterpart").
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// CancelWithRecord persists the transition to cancelled and the
// cancellation record in a single transaction. The state update is
// conditional on the meeting still being cancellable, so a racing
// responder or second canceller cannot produce a record without a
// matching transition.
func (r *meetingRepository) CancelWithRecord(ctx context.Context, meeting *entities.Meeting, record *entities.CancellationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Meeting{}).
			Where("id = ? AND state IN ?", meeting.ID,
				[]entities.MeetingState{entities.MeetingStatePending, entities.MeetingStateAccepted}).
			Updates(map[string]interface{}{
				"state":      entities.MeetingStateCancelled,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("meeting %s is no longer cancellable", meeting.ID)
		}

		return tx.Create(record).Error
	})
}

// FindDueAccepted retrieves accepted meetings whose scheduled time falls in
// [from, to]. Both bounds are inclusive: a meeting starting exactly now is
// still caught when the sweep was delayed.
func (r *meetingRepository) FindDueAccepted(ctx context.Context, from, to time.Time) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("state = ?", entities.MeetingStateAccepted).
		Where("scheduled_time >= ? AND scheduled_time <= ?", from, to).
		Order("scheduled_time ASC").
		Find(&meetings).Error
	return meetings, err
}

// List retrieves meetings with filters and pagination
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	var meetings []*entities.Meeting
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Meeting{}).
		Preload("Initiator").
		Preload("Counterpart")

	// Apply filters
	if filters.ParticipantID != nil {
		query = query.Where("initiator_id = ? OR counterpart_id = ?", *filters.ParticipantID, *filters.ParticipantID)
	}
	if filters.State != nil {
		query = query.Where("state = ?", *filters.State)
	}
	if filters.From != nil {
		query = query.Where("scheduled_time >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("scheduled_time <= ?", *filters.To)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply sorting
	sortBy := "created_at"
	if filters.SortBy != "" {
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if filters.SortOrder != "" {
		sortOrder = filters.SortOrder
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	// Apply pagination
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&meetings).Error
	return meetings, total, err
}
