package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
)

// ledgerRepository implements the LedgerRepository interface
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new reminder-ledger repository
func NewLedgerRepository(db *gorm.DB) repositories.LedgerRepository {
	return &ledgerRepository{db: db}
}

// GetStatus retrieves the ledger entry for a meeting; an absent entry is
// returned as (nil, nil)
func (r *ledgerRepository) GetStatus(ctx context.Context, meetingID uuid.UUID) (*entities.ReminderLedger, error) {
	var entry entities.ReminderLedger
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// MarkNotified creates the entry if absent, then flips the participant's
// flag. The flag write is a conditional UPDATE (`... WHERE flag = false`),
// so concurrent sweeps racing on the same participant resolve at the
// storage layer: one wins, the other is a no-op. The flags live in
// separate columns and neither write blocks the other.
func (r *ledgerRepository) MarkNotified(ctx context.Context, meetingID uuid.UUID, party entities.Party) error {
	entry := &entities.ReminderLedger{MeetingID: meetingID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error; err != nil {
		return err
	}

	column := "initiator_notified"
	if party == entities.PartyCounterpart {
		column = "counterpart_notified"
	}

	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&entities.ReminderLedger{}).
		Where("meeting_id = ? AND "+column+" = ?", meetingID, false).
		Updates(map[string]interface{}{
			column:                 true,
			"notification_sent_at": gorm.Expr("COALESCE(notification_sent_at, ?)", now),
			"updated_at":           now,
		}).Error
}
