package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReminderLedger records, per meeting and per participant, whether a
// reminder has been successfully delivered. One row per meeting, created
// lazily by the sweep. A flag that is true is never reset; the only writer
// is the sweep, through a conditional update at the storage layer.
type ReminderLedger struct {
	MeetingID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"meeting_id"`
	Meeting             *Meeting   `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	InitiatorNotified   bool       `gorm:"not null;default:false" json:"initiator_notified"`
	CounterpartNotified bool       `gorm:"not null;default:false" json:"counterpart_notified"`
	NotificationSentAt  *time.Time `json:"notification_sent_at,omitempty"`
	CreatedAt           time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for ReminderLedger
func (ReminderLedger) TableName() string {
	return "reminder_ledgers"
}

// Notified reports whether the given party has already been reminded.
// A nil ledger is treated as both flags false.
func (l *ReminderLedger) Notified(party Party) bool {
	if l == nil {
		return false
	}
	if party == PartyInitiator {
		return l.InitiatorNotified
	}
	return l.CounterpartNotified
}

// FullyNotified reports whether both participants have been reminded
func (l *ReminderLedger) FullyNotified() bool {
	return l != nil && l.InitiatorNotified && l.CounterpartNotified
}
