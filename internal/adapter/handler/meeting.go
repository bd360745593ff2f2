package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingdto "github.com/skillsync-team/meeting-service/internal/adapter/dto/meeting"
	"github.com/skillsync-team/meeting-service/internal/adapter/presenter"
	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
	meetingUsecase "github.com/skillsync-team/meeting-service/internal/usecase/meeting"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// Propose handles POST /meetings
// @Summary      Propose a meeting
// @Description  Creates a pending meeting proposal addressed to the counterpart
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meetingdto.ProposeMeetingRequest  true  "Meeting proposal"
// @Success      201      {object}  meetingdto.MeetingResponse
// @Router       /meetings [post]
func (h *Meeting) Propose(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error":   "unauthorized",
			"message": err.Error(),
		})
	}

	var req meetingdto.ProposeMeetingRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	counterpartID, err := uuid.Parse(req.CounterpartID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_counterpart_id",
			"message": err.Error(),
		})
	}

	m, err := h.meetingService.Propose(c.Request().Context(), meetingUsecase.ProposeInput{
		InitiatorID:   actor,
		CounterpartID: counterpartID,
		ScheduledTime: req.ScheduledTime,
		Description:   req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToMeetingResponse(m))
}

// Get handles GET /meetings/:id
// @Summary      Get meeting details
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meetingdto.MeetingResponse
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	actor, meetingID, ok := h.actorAndMeeting(c)
	if !ok {
		return nil
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), meetingID, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(m))
}

// List handles GET /meetings
// @Summary      List the actor's meetings
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  meetingdto.MeetingListResponse
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error":   "unauthorized",
			"message": err.Error(),
		})
	}

	var req meetingdto.ListMeetingsRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	filters := repositories.MeetingFilters{
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.State != nil {
		state := entities.MeetingState(*req.State)
		filters.State = &state
	}

	meetings, total, err := h.meetingService.ListMeetings(c.Request().Context(), actor, filters)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingListResponse(meetings, total, page, pageSize))
}

// Respond handles POST /meetings/:id/respond
// @Summary      Accept or reject a pending meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Meeting ID (UUID)"
// @Param        request  body      meetingdto.RespondMeetingRequest  true  "Decision"
// @Success      200      {object}  meetingdto.MeetingResponse
// @Router       /meetings/{id}/respond [post]
func (h *Meeting) Respond(c echo.Context) error {
	actor, meetingID, ok := h.actorAndMeeting(c)
	if !ok {
		return nil
	}

	var req meetingdto.RespondMeetingRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	m, err := h.meetingService.Respond(c.Request().Context(), meetingID, actor, meetingUsecase.Decision(req.Decision))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(m))
}

// Cancel handles POST /meetings/:id/cancel
// @Summary      Cancel a pending or accepted meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Meeting ID (UUID)"
// @Param        request  body      meetingdto.CancelMeetingRequest  true  "Cancellation reason"
// @Success      200      {object}  meetingdto.MeetingResponse
// @Router       /meetings/{id}/cancel [post]
func (h *Meeting) Cancel(c echo.Context) error {
	actor, meetingID, ok := h.actorAndMeeting(c)
	if !ok {
		return nil
	}

	var req meetingdto.CancelMeetingRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	m, err := h.meetingService.Cancel(c.Request().Context(), meetingID, actor, req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(m))
}

// Acknowledge handles POST /meetings/:id/cancellation/ack
// @Summary      Acknowledge a cancellation
// @Tags         Meetings
// @Produce      json
// @Param        id   path  string  true  "Meeting ID (UUID)"
// @Success      204
// @Router       /meetings/{id}/cancellation/ack [post]
func (h *Meeting) Acknowledge(c echo.Context) error {
	actor, meetingID, ok := h.actorAndMeeting(c)
	if !ok {
		return nil
	}

	if err := h.meetingService.Acknowledge(c.Request().Context(), meetingID, actor); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListUnacknowledged handles GET /cancellations/unacknowledged
// @Summary      List unacknowledged cancellations addressed to the actor
// @Tags         Meetings
// @Produce      json
// @Success      200  {array}  meetingdto.CancellationResponse
// @Router       /cancellations/unacknowledged [get]
func (h *Meeting) ListUnacknowledged(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error":   "unauthorized",
			"message": err.Error(),
		})
	}

	records, err := h.meetingService.ListUnacknowledgedCancellations(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]*meetingdto.CancellationResponse, len(records))
	for i, r := range records {
		responses[i] = presenter.ToCancellationResponse(r)
	}

	return c.JSON(http.StatusOK, responses)
}

// actorAndMeeting extracts the actor and the meeting ID path parameter,
// writing the rejection response itself when either is invalid
func (h *Meeting) actorAndMeeting(c echo.Context) (uuid.UUID, uuid.UUID, bool) {
	actor, err := actorID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error":   "unauthorized",
			"message": err.Error(),
		})
		return uuid.Nil, uuid.Nil, false
	}

	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_meeting_id",
			"message": err.Error(),
		})
		return uuid.Nil, uuid.Nil, false
	}

	return actor, meetingID, true
}
