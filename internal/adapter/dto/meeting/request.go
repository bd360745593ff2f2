package meeting

import (
	"time"
)

// ProposeMeetingRequest represents the request to propose a meeting
type ProposeMeetingRequest struct {
	CounterpartID string    `json:"counterpart_id" validate:"required,uuid"`
	ScheduledTime time.Time `json:"scheduled_time" validate:"required"`
	Description   string    `json:"description" validate:"required,min=1,max=2000"`
}

// RespondMeetingRequest represents the counterpart's accept/reject decision
type RespondMeetingRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

// CancelMeetingRequest represents the request to cancel a meeting
type CancelMeetingRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	State     *string `query:"state" validate:"omitempty,oneof=pending accepted rejected cancelled completed"`
	Page      int     `query:"page" validate:"omitempty,min=1"`
	PageSize  int     `query:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string  `query:"sort_by" validate:"omitempty,oneof=created_at scheduled_time"`
	SortOrder string  `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}
