package entities

import (
	"time"

	"github.com/google/uuid"
)

// CancellationRecord tracks a unilateral cancellation of a meeting and
// whether the counterpart has acknowledged it. A meeting has at most one
// record; it is created in the same transaction as the state transition
// to cancelled.
type CancellationRecord struct {
	ID                        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID                 uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"meeting_id"`
	Meeting                   *Meeting   `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	CancelledBy               uuid.UUID  `gorm:"type:uuid;not null;index" json:"cancelled_by"`
	Reason                    string     `gorm:"type:text;not null" json:"reason"`
	CancelledAt               time.Time  `gorm:"not null" json:"cancelled_at"`
	AcknowledgedByCounterpart bool       `gorm:"not null;default:false;index" json:"acknowledged_by_counterpart"`
	AcknowledgedAt            *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt                 time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt                 time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for CancellationRecord
func (CancellationRecord) TableName() string {
	return "cancellation_records"
}

// CounterpartOf returns the participant who did not cancel.
// The meeting association must be loaded.
func (c *CancellationRecord) CounterpartOf() uuid.UUID {
	if c.Meeting == nil {
		return uuid.Nil
	}
	return c.Meeting.OtherParticipant(c.CancelledBy)
}
