package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/skillsync-team/meeting-service/errors"
	"github.com/skillsync-team/meeting-service/internal/adapter/dto/common"
	usecaseErrors "github.com/skillsync-team/meeting-service/internal/usecase/errors"
)

// UserIDHeader carries the authenticated actor's identity, set by the
// upstream gateway. End-user authentication is handled there, not here.
const UserIDHeader = "X-User-ID"

// actorID extracts the acting user's ID from the request
func actorID(c echo.Context) (uuid.UUID, error) {
	raw := c.Request().Header.Get(UserIDHeader)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing %s header", UserIDHeader)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s header: %w", UserIDHeader, err)
	}
	return id, nil
}

// respondError maps a use-case error to the HTTP edge contract
func respondError(c echo.Context, err error) error {
	appErr := toAppError(err)
	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Error:   appErr.Code.String(),
		Message: appErr.Message,
		Details: appErr.Details,
		Code:    appErr.Code.String(),
	})
}

func toAppError(err error) apperrors.AppError {
	switch {
	case errors.Is(err, usecaseErrors.ErrInvalidInput):
		return apperrors.ErrInvalidInput(err.Error())
	case errors.Is(err, usecaseErrors.ErrInvalidState):
		return apperrors.ErrInvalidState(err.Error())
	case errors.Is(err, usecaseErrors.ErrNotAuthorized):
		return apperrors.ErrNotAuthorized(err.Error())
	case errors.Is(err, usecaseErrors.ErrLookupFailure):
		return apperrors.ErrLookupFailure("resource").WithDetail("cause", err.Error())
	case errors.Is(err, usecaseErrors.ErrDeliveryFailure):
		return apperrors.ErrDeliveryFailure(err)
	default:
		return apperrors.ErrInternal(err)
	}
}

// bindAndValidate binds the request payload and runs struct validation.
// On rejection it writes the 400 response itself and reports false.
func bindAndValidate(c echo.Context, req interface{}) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
		return false
	}
	return true
}
