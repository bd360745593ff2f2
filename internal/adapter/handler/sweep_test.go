package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
	custommiddleware "github.com/skillsync-team/meeting-service/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/skillsync-team/meeting-service/internal/usecase/errors"
	meetingUsecase "github.com/skillsync-team/meeting-service/internal/usecase/meeting"
	"github.com/skillsync-team/meeting-service/internal/usecase/reminder"
)

// stubReminderService returns a canned sweep result
type stubReminderService struct {
	result *reminder.Result
	calls  int
}

func (s *stubReminderService) Run(context.Context) (*reminder.Result, error) {
	s.calls++
	return s.result, nil
}

// stubMeetingService satisfies the meeting Service interface; only
// Complete is exercised here
type stubMeetingService struct{}

func (s *stubMeetingService) Propose(context.Context, meetingUsecase.ProposeInput) (*entities.Meeting, error) {
	return nil, usecaseErrors.ErrMeetingNotFound
}
func (s *stubMeetingService) Respond(context.Context, uuid.UUID, uuid.UUID, meetingUsecase.Decision) (*entities.Meeting, error) {
	return nil, usecaseErrors.ErrMeetingNotFound
}
func (s *stubMeetingService) Cancel(context.Context, uuid.UUID, uuid.UUID, string) (*entities.Meeting, error) {
	return nil, usecaseErrors.ErrMeetingNotFound
}
func (s *stubMeetingService) Complete(context.Context, uuid.UUID) (*entities.Meeting, error) {
	return nil, usecaseErrors.ErrMeetingNotFound
}
func (s *stubMeetingService) GetMeeting(context.Context, uuid.UUID, uuid.UUID) (*entities.Meeting, error) {
	return nil, usecaseErrors.ErrMeetingNotFound
}
func (s *stubMeetingService) ListMeetings(context.Context, uuid.UUID, repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	return nil, 0, nil
}
func (s *stubMeetingService) Acknowledge(context.Context, uuid.UUID, uuid.UUID) error {
	return usecaseErrors.ErrCancellationNotFound
}
func (s *stubMeetingService) ListUnacknowledgedCancellations(context.Context, uuid.UUID) ([]*entities.CancellationRecord, error) {
	return nil, nil
}

func setupInternalRoutes(t *testing.T, secret string) (*echo.Echo, *stubReminderService) {
	t.Helper()

	stub := &stubReminderService{
		result: &reminder.Result{
			SweepID:       uuid.New(),
			Examined:      3,
			RemindersSent: 2,
			Skipped:       1,
			StartedAt:     time.Now().UTC(),
		},
	}

	e := echo.New()
	internal := e.Group("/internal", custommiddleware.RequireSharedSecret(secret))

	h := NewInternalHandler(stub, &stubMeetingService{}, zap.NewNop())
	internal.POST("/reminders/sweep", h.Sweep)
	internal.POST("/meetings/:id/complete", h.Complete)

	return e, stub
}

func TestSweepRequiresSecret(t *testing.T) {
	e, stub := setupInternalRoutes(t, "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/internal/reminders/sweep", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing secret should yield 401, got %d", rec.Code)
	}
	if stub.calls != 0 {
		t.Fatalf("sweep must not run without the secret")
	}
}

func TestSweepRejectsWrongSecret(t *testing.T) {
	e, stub := setupInternalRoutes(t, "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/internal/reminders/sweep", nil)
	req.Header.Set(custommiddleware.SecretHeader, "wrong")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret should yield 401, got %d", rec.Code)
	}
	if stub.calls != 0 {
		t.Fatalf("sweep must not run with a wrong secret")
	}
}

func TestSweepRunsWithCorrectSecret(t *testing.T) {
	e, stub := setupInternalRoutes(t, "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/internal/reminders/sweep", nil)
	req.Header.Set(custommiddleware.SecretHeader, "topsecret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.calls != 1 {
		t.Fatalf("sweep should run exactly once, ran %d times", stub.calls)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["reminders_sent"] != float64(2) {
		t.Fatalf("unexpected sweep response: %v", body)
	}
}

func TestCompleteMapsLookupFailure(t *testing.T) {
	e, _ := setupInternalRoutes(t, "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/internal/meetings/"+uuid.New().String()+"/complete", nil)
	req.Header.Set(custommiddleware.SecretHeader, "topsecret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing meeting should yield 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
