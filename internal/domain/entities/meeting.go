package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingState represents the lifecycle state of a meeting
type MeetingState string

const (
	MeetingStatePending   MeetingState = "pending"
	MeetingStateAccepted  MeetingState = "accepted"
	MeetingStateRejected  MeetingState = "rejected"
	MeetingStateCancelled MeetingState = "cancelled"
	MeetingStateCompleted MeetingState = "completed"
)

// IsValid checks if the meeting state is a known state
func (s MeetingState) IsValid() bool {
	switch s {
	case MeetingStatePending, MeetingStateAccepted, MeetingStateRejected,
		MeetingStateCancelled, MeetingStateCompleted:
		return true
	}
	return false
}

// IsTerminal checks if the state has no outgoing transitions
func (s MeetingState) IsTerminal() bool {
	switch s {
	case MeetingStateRejected, MeetingStateCancelled, MeetingStateCompleted:
		return true
	}
	return false
}

// CanTransitionTo checks whether the state machine allows moving to next.
// pending -> accepted | rejected | cancelled; accepted -> cancelled | completed.
func (s MeetingState) CanTransitionTo(next MeetingState) bool {
	switch s {
	case MeetingStatePending:
		return next == MeetingStateAccepted || next == MeetingStateRejected || next == MeetingStateCancelled
	case MeetingStateAccepted:
		return next == MeetingStateCancelled || next == MeetingStateCompleted
	}
	return false
}

// Meeting represents a proposed/scheduled meeting between two users
type Meeting struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InitiatorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"initiator_id"`
	Initiator     *User          `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
	CounterpartID uuid.UUID      `gorm:"type:uuid;not null;index" json:"counterpart_id"`
	Counterpart   *User          `gorm:"foreignKey:CounterpartID" json:"counterpart,omitempty"`
	ScheduledTime time.Time      `gorm:"not null;index" json:"scheduled_time"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	MeetingLink   *string        `gorm:"type:varchar(500)" json:"meeting_link,omitempty"`
	State         MeetingState   `gorm:"type:varchar(20);not null;default:'pending';index" json:"state"`
	Metadata      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt     time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// IsParticipant checks if the user is one of the two parties
func (m *Meeting) IsParticipant(userID uuid.UUID) bool {
	return m.InitiatorID == userID || m.CounterpartID == userID
}

// OtherParticipant returns the counterpart of the given participant.
// The caller must ensure userID is a participant.
func (m *Meeting) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if m.InitiatorID == userID {
		return m.CounterpartID
	}
	return m.InitiatorID
}

// PartyOf returns which side of the meeting the user is on
func (m *Meeting) PartyOf(userID uuid.UUID) (Party, bool) {
	switch userID {
	case m.InitiatorID:
		return PartyInitiator, true
	case m.CounterpartID:
		return PartyCounterpart, true
	}
	return "", false
}

// Accept moves the meeting to accepted and assigns the meeting link.
// The link is set exactly once; Accept is only valid from pending.
func (m *Meeting) Accept(link string) {
	m.State = MeetingStateAccepted
	if m.MeetingLink == nil {
		m.MeetingLink = &link
	}
}

// Reject moves the meeting to rejected; no other fields change
func (m *Meeting) Reject() {
	m.State = MeetingStateRejected
}

// Cancel moves the meeting to cancelled
func (m *Meeting) Cancel() {
	m.State = MeetingStateCancelled
}

// Complete moves the meeting to completed
func (m *Meeting) Complete() {
	m.State = MeetingStateCompleted
}

// Party identifies which side of a meeting a user is on
type Party string

const (
	PartyInitiator   Party = "initiator"
	PartyCounterpart Party = "counterpart"
)

// IsValid checks if the party is a known value
func (p Party) IsValid() bool {
	return p == PartyInitiator || p == PartyCounterpart
}
