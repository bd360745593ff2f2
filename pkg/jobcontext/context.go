package jobcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keySweepID   KeyContext = "sweep_id"
	keyWorkerID  KeyContext = "worker_id"
	keyMeetingID KeyContext = "meeting_id"
	keyStartTime KeyContext = "sweep_start_time"
)

// SweepMetadata holds metadata for one unit of sweep work
type SweepMetadata struct {
	SweepID   uuid.UUID
	WorkerID  int
	MeetingID uuid.UUID
	StartTime time.Time
}

// SweepBegin initializes a sweep context with metadata and a timeout that
// bounds the whole invocation.
func SweepBegin(parentCtx context.Context, sweepID uuid.UUID, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)
	ctx = context.WithValue(ctx, keySweepID, sweepID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx, cancel
}

// WithWorker annotates the context with the worker and meeting being processed
func WithWorker(ctx context.Context, workerID int, meetingID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyMeetingID, meetingID)
	return ctx
}

// GetSweepID extracts the sweep ID from context
func GetSweepID(ctx context.Context) (uuid.UUID, bool) {
	sweepID, ok := ctx.Value(keySweepID).(uuid.UUID)
	return sweepID, ok
}

// GetWorkerID extracts the worker ID from context
func GetWorkerID(ctx context.Context) int {
	workerID, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return workerID
}

// GetMeetingID extracts the meeting being processed from context
func GetMeetingID(ctx context.Context) (uuid.UUID, bool) {
	meetingID, ok := ctx.Value(keyMeetingID).(uuid.UUID)
	return meetingID, ok
}

// GetStartTime extracts the sweep start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyStartTime).(time.Time)
	return startTime, ok
}

// GetSweepMetadata extracts all sweep metadata from context
func GetSweepMetadata(ctx context.Context) *SweepMetadata {
	sweepID, _ := GetSweepID(ctx)
	meetingID, _ := GetMeetingID(ctx)
	startTime, _ := GetStartTime(ctx)

	return &SweepMetadata{
		SweepID:   sweepID,
		WorkerID:  GetWorkerID(ctx),
		MeetingID: meetingID,
		StartTime: startTime,
	}
}

// IsRetryableError checks if a delivery error is worth retrying within the
// same attempt. Retryable errors include network errors, timeouts, and
// rate limits; everything else fails the attempt immediately.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Context errors (timeout, cancelled)
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// SMTP transient failures (4xx reply codes)
	if strings.Contains(errStr, "421") ||
		strings.Contains(errStr, "450") ||
		strings.Contains(errStr, "451") ||
		strings.Contains(errStr, "452") {
		return true
	}

	// Rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
