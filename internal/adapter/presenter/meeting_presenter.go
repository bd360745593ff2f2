package presenter

import (
	"github.com/skillsync-team/meeting-service/internal/adapter/dto/meeting"
	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/usecase/reminder"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *meeting.UserResponse {
	if u == nil {
		return nil
	}
	return &meeting.UserResponse{
		ID:   u.ID.String(),
		Name: u.Name,
	}
}

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	return &meeting.MeetingResponse{
		ID:            m.ID.String(),
		InitiatorID:   m.InitiatorID.String(),
		Initiator:     ToUserResponse(m.Initiator),
		CounterpartID: m.CounterpartID.String(),
		Counterpart:   ToUserResponse(m.Counterpart),
		ScheduledTime: m.ScheduledTime,
		Description:   m.Description,
		MeetingLink:   m.MeetingLink,
		State:         string(m.State),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToMeetingListResponse converts a slice of Meeting entities to MeetingListResponse
func ToMeetingListResponse(meetings []*entities.Meeting, total int64, page, pageSize int) *meeting.MeetingListResponse {
	responses := make([]*meeting.MeetingResponse, len(meetings))
	for i, m := range meetings {
		responses[i] = ToMeetingResponse(m)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &meeting.MeetingListResponse{
		Meetings:   responses,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

// ToCancellationResponse converts a CancellationRecord entity to its DTO
func ToCancellationResponse(c *entities.CancellationRecord) *meeting.CancellationResponse {
	if c == nil {
		return nil
	}

	return &meeting.CancellationResponse{
		MeetingID:                 c.MeetingID.String(),
		Meeting:                   ToMeetingResponse(c.Meeting),
		CancelledBy:               c.CancelledBy.String(),
		Reason:                    c.Reason,
		CancelledAt:               c.CancelledAt,
		AcknowledgedByCounterpart: c.AcknowledgedByCounterpart,
		AcknowledgedAt:            c.AcknowledgedAt,
	}
}

// ToSweepResponse converts a sweep Result to the trigger response contract
func ToSweepResponse(r *reminder.Result) *meeting.SweepResponse {
	return &meeting.SweepResponse{
		Success:       true,
		Summary:       r.Summary(),
		Examined:      r.Examined,
		Skipped:       r.Skipped,
		RemindersSent: r.RemindersSent,
		Errors:        r.Errors,
	}
}
