package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
	usecaseErrors "github.com/skillsync-team/meeting-service/internal/usecase/errors"
	"github.com/skillsync-team/meeting-service/internal/usecase/notification"
)

// MeetingService handles the meeting lifecycle business logic
type MeetingService struct {
	meetingRepo      repositories.MeetingRepository
	cancellationRepo repositories.CancellationRepository
	userRepo         repositories.UserRepository
	dispatcher       notification.Dispatcher
	linkBaseURL      string
	logger           *zap.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	cancellationRepo repositories.CancellationRepository,
	userRepo repositories.UserRepository,
	dispatcher notification.Dispatcher,
	linkBaseURL string,
	logger *zap.Logger,
) *MeetingService {
	return &MeetingService{
		meetingRepo:      meetingRepo,
		cancellationRepo: cancellationRepo,
		userRepo:         userRepo,
		dispatcher:       dispatcher,
		linkBaseURL:      strings.TrimRight(linkBaseURL, "/"),
		logger:           logger,
	}
}

// ProposeInput represents input for proposing a meeting
type ProposeInput struct {
	InitiatorID   uuid.UUID
	CounterpartID uuid.UUID
	ScheduledTime time.Time
	Description   string
}

// Propose creates a pending meeting. The scheduled time must be strictly
// in the future and the two parties distinct; both must resolve in the
// participant directory.
func (s *MeetingService) Propose(ctx context.Context, input ProposeInput) (*entities.Meeting, error) {
	if input.InitiatorID == input.CounterpartID {
		return nil, usecaseErrors.ErrSelfMeeting
	}
	if !input.ScheduledTime.After(time.Now()) {
		return nil, usecaseErrors.ErrScheduledTimeInPast
	}

	initiator, err := s.findUser(ctx, input.InitiatorID)
	if err != nil {
		return nil, err
	}
	counterpart, err := s.findUser(ctx, input.CounterpartID)
	if err != nil {
		return nil, err
	}

	meeting := &entities.Meeting{
		ID:            uuid.New(),
		InitiatorID:   input.InitiatorID,
		CounterpartID: input.CounterpartID,
		ScheduledTime: input.ScheduledTime.UTC(),
		Description:   input.Description,
		State:         entities.MeetingStatePending,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.dispatcher.Enqueue(notification.ProposedMessage(meeting, counterpart, initiator))

	return meeting, nil
}

// Respond lets the counterpart accept or reject a pending meeting. Accepting
// assigns the meeting link; rejecting changes no other fields.
func (s *MeetingService) Respond(ctx context.Context, meetingID, responderID uuid.UUID, decision Decision) (*entities.Meeting, error) {
	if decision != DecisionAccept && decision != DecisionReject {
		return nil, usecaseErrors.ErrInvalidDecision
	}

	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if meeting.CounterpartID != responderID {
		return nil, usecaseErrors.ErrNotCounterpart
	}
	if meeting.State != entities.MeetingStatePending {
		return nil, usecaseErrors.ErrNotPending
	}

	if decision == DecisionAccept {
		meeting.Accept(fmt.Sprintf("%s/%s", s.linkBaseURL, uuid.New().String()))
	} else {
		meeting.Reject()
	}

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	s.notifyResponded(ctx, meeting, decision == DecisionAccept)

	return meeting, nil
}

// Cancel cancels a pending or accepted meeting. The state transition and the
// cancellation record are written in one transaction; the counterpart
// notification is fire-and-forget and never rolls back the cancellation.
func (s *MeetingService) Cancel(ctx context.Context, meetingID, cancellerID uuid.UUID, reason string) (*entities.Meeting, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, usecaseErrors.ErrEmptyReason
	}

	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if !meeting.IsParticipant(cancellerID) {
		return nil, usecaseErrors.ErrNotParticipant
	}
	if meeting.State != entities.MeetingStatePending && meeting.State != entities.MeetingStateAccepted {
		return nil, usecaseErrors.ErrNotCancellable
	}

	record := &entities.CancellationRecord{
		ID:          uuid.New(),
		MeetingID:   meeting.ID,
		CancelledBy: cancellerID,
		Reason:      reason,
		CancelledAt: time.Now().UTC(),
	}

	meeting.Cancel()
	if err := s.meetingRepo.CancelWithRecord(ctx, meeting, record); err != nil {
		return nil, fmt.Errorf("failed to cancel meeting: %w", err)
	}

	s.notifyCancelled(ctx, meeting, record, cancellerID)

	return meeting, nil
}

// Complete retires an accepted meeting once its time has passed. Calling it
// on an already-completed meeting is a no-op.
func (s *MeetingService) Complete(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if meeting.State == entities.MeetingStateCompleted {
		return meeting, nil
	}
	if meeting.State != entities.MeetingStateAccepted {
		return nil, usecaseErrors.ErrNotAccepted
	}

	meeting.Complete()
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to complete meeting: %w", err)
	}

	return meeting, nil
}

// GetMeeting retrieves a meeting; only its participants may see it
func (s *MeetingService) GetMeeting(ctx context.Context, meetingID, actorID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.IsParticipant(actorID) {
		return nil, usecaseErrors.ErrNotParticipant
	}
	return meeting, nil
}

// ListMeetings retrieves the user's meetings with filters
func (s *MeetingService) ListMeetings(ctx context.Context, userID uuid.UUID, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	filters.ParticipantID = &userID
	meetings, total, err := s.meetingRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

// Acknowledge records the counterpart's acknowledgment of a cancellation.
// Re-acknowledging an already-acknowledged cancellation is an idempotent
// no-op; acknowledging without a cancellation record is an error.
func (s *MeetingService) Acknowledge(ctx context.Context, meetingID, acknowledgerID uuid.UUID) error {
	record, err := s.cancellationRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrCancellationNotFound
		}
		return fmt.Errorf("failed to load cancellation record: %w", err)
	}

	if record.CancelledBy == acknowledgerID {
		return usecaseErrors.ErrCannotAckOwnCancel
	}
	if record.Meeting == nil || !record.Meeting.IsParticipant(acknowledgerID) {
		return usecaseErrors.ErrNotParticipant
	}

	rows, err := s.cancellationRepo.Acknowledge(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to acknowledge cancellation: %w", err)
	}
	if rows == 0 {
		s.logger.Debug("cancellation already acknowledged",
			zap.String("meeting_id", meetingID.String()),
		)
	}

	return nil
}

// ListUnacknowledgedCancellations retrieves unacknowledged cancellations
// where the user is the counterpart
func (s *MeetingService) ListUnacknowledgedCancellations(ctx context.Context, userID uuid.UUID) ([]*entities.CancellationRecord, error) {
	records, err := s.cancellationRepo.ListUnacknowledgedForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unacknowledged cancellations: %w", err)
	}
	return records, nil
}

func (s *MeetingService) findMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	return meeting, nil
}

func (s *MeetingService) findUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// notifyResponded tells the initiator the counterpart has decided. Lookup
// failures here are logged, not surfaced; the transition has committed.
func (s *MeetingService) notifyResponded(ctx context.Context, meeting *entities.Meeting, accepted bool) {
	initiator, err := s.findUser(ctx, meeting.InitiatorID)
	if err != nil {
		s.logger.Warn("skipping response notification", zap.Error(err))
		return
	}
	counterpart, err := s.findUser(ctx, meeting.CounterpartID)
	if err != nil {
		s.logger.Warn("skipping response notification", zap.Error(err))
		return
	}
	s.dispatcher.Enqueue(notification.RespondedMessage(meeting, initiator, counterpart, accepted))
}

// notifyCancelled tells the counterpart who cancelled, when the meeting was
// to occur, and why.
func (s *MeetingService) notifyCancelled(ctx context.Context, meeting *entities.Meeting, record *entities.CancellationRecord, cancellerID uuid.UUID) {
	canceller, err := s.findUser(ctx, cancellerID)
	if err != nil {
		s.logger.Warn("skipping cancellation notification", zap.Error(err))
		return
	}
	counterpart, err := s.findUser(ctx, meeting.OtherParticipant(cancellerID))
	if err != nil {
		s.logger.Warn("skipping cancellation notification", zap.Error(err))
		return
	}
	s.dispatcher.Enqueue(notification.CancellationMessage(meeting, record, counterpart, canceller))
}
