package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
)

// cancellationRepository implements the CancellationRepository interface
type cancellationRepository struct {
	db *gorm.DB
}

// NewCancellationRepository creates a new cancellation repository
func NewCancellationRepository(db *gorm.DB) repositories.CancellationRepository {
	return &cancellationRepository{db: db}
}

// FindByMeetingID retrieves the cancellation record for a meeting
func (r *cancellationRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.CancellationRecord, error) {
	var record entities.CancellationRecord
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Where("meeting_id = ?", meetingID).
		First(&record).Error

	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Acknowledge flips the acknowledged flag with a conditional update and
// reports how many rows changed; zero means it was already acknowledged
func (r *cancellationRepository) Acknowledge(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&entities.CancellationRecord{}).
		Where("meeting_id = ? AND acknowledged_by_counterpart = ?", meetingID, false).
		Updates(map[string]interface{}{
			"acknowledged_by_counterpart": true,
			"acknowledged_at":             now,
			"updated_at":                  now,
		})
	return res.RowsAffected, res.Error
}

// ListUnacknowledgedForUser retrieves unacknowledged cancellations where
// the user is the counterpart, i.e. a participant who did not cancel
func (r *cancellationRepository) ListUnacknowledgedForUser(ctx context.Context, userID uuid.UUID) ([]*entities.CancellationRecord, error) {
	var records []*entities.CancellationRecord
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Joins("JOIN meetings ON meetings.id = cancellation_records.meeting_id").
		Where("cancellation_records.acknowledged_by_counterpart = ?", false).
		Where("cancellation_records.cancelled_by <> ?", userID).
		Where("meetings.initiator_id = ? OR meetings.counterpart_id = ?", userID, userID).
		Order("cancellation_records.cancelled_at DESC").
		Find(&records).Error
	return records, err
}
