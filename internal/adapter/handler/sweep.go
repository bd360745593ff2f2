package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/skillsync-team/meeting-service/internal/adapter/presenter"
	meetingUsecase "github.com/skillsync-team/meeting-service/internal/usecase/meeting"
	"github.com/skillsync-team/meeting-service/internal/usecase/reminder"
)

// Internal handles operational endpoints invoked by the scheduler,
// not by end users
type Internal struct {
	reminderService reminder.Service
	meetingService  meetingUsecase.Service
	logger          *zap.Logger
}

// NewInternalHandler creates a new internal operations handler
func NewInternalHandler(reminderService reminder.Service, meetingService meetingUsecase.Service, logger *zap.Logger) *Internal {
	return &Internal{
		reminderService: reminderService,
		meetingService:  meetingService,
		logger:          logger,
	}
}

// Sweep handles POST /internal/reminders/sweep
// @Summary      Run a reminder sweep
// @Description  Examines due accepted meetings and dispatches pending reminders
// @Tags         Internal
// @Produce      json
// @Success      200  {object}  meeting.SweepResponse
// @Router       /internal/reminders/sweep [post]
func (h *Internal) Sweep(c echo.Context) error {
	result, err := h.reminderService.Run(c.Request().Context())
	if err != nil {
		h.logger.Error("Reminder sweep failed", zap.Error(err))
		return respondError(c, err)
	}

	h.logger.Info("Reminder sweep finished", zap.String("summary", result.Summary()))
	return c.JSON(http.StatusOK, presenter.ToSweepResponse(result))
}

// Complete handles POST /internal/meetings/:id/complete
// @Summary      Mark an accepted meeting as completed
// @Tags         Internal
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse
// @Router       /internal/meetings/{id}/complete [post]
func (h *Internal) Complete(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_meeting_id",
			"message": err.Error(),
		})
	}

	m, err := h.meetingService.Complete(c.Request().Context(), meetingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(m))
}
