package meeting

import (
	"time"
)

// UserResponse represents a participant in responses
type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MeetingResponse represents a meeting in responses
type MeetingResponse struct {
	ID            string        `json:"id"`
	InitiatorID   string        `json:"initiator_id"`
	Initiator     *UserResponse `json:"initiator,omitempty"`
	CounterpartID string        `json:"counterpart_id"`
	Counterpart   *UserResponse `json:"counterpart,omitempty"`
	ScheduledTime time.Time     `json:"scheduled_time"`
	Description   string        `json:"description"`
	MeetingLink   *string       `json:"meeting_link,omitempty"`
	State         string        `json:"state"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// MeetingListResponse represents a paginated list of meetings
type MeetingListResponse struct {
	Meetings   []*MeetingResponse `json:"meetings"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
	TotalItems int64              `json:"total_items"`
}

// CancellationResponse represents a cancellation record in responses
type CancellationResponse struct {
	MeetingID                 string           `json:"meeting_id"`
	Meeting                   *MeetingResponse `json:"meeting,omitempty"`
	CancelledBy               string           `json:"cancelled_by"`
	Reason                    string           `json:"reason"`
	CancelledAt               time.Time        `json:"cancelled_at"`
	AcknowledgedByCounterpart bool             `json:"acknowledged_by_counterpart"`
	AcknowledgedAt            *time.Time       `json:"acknowledged_at,omitempty"`
}

// SweepResponse represents the structured result of one sweep trigger
type SweepResponse struct {
	Success       bool     `json:"success"`
	Summary       string   `json:"summary"`
	Examined      int      `json:"examined"`
	Skipped       int      `json:"skipped"`
	RemindersSent int      `json:"reminders_sent"`
	Errors        []string `json:"errors,omitempty"`
}
