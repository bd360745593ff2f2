package errors

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map these to HTTP responses; everything more
// specific wraps one of them so errors.Is works against the category.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidState    = errors.New("invalid state")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrLookupFailure   = errors.New("lookup failure")
	ErrDeliveryFailure = errors.New("delivery failure")
)

// Meeting errors
var (
	ErrMeetingNotFound      = fmt.Errorf("%w: meeting not found", ErrLookupFailure)
	ErrScheduledTimeInPast  = fmt.Errorf("%w: scheduled time must be in the future", ErrInvalidInput)
	ErrSelfMeeting          = fmt.Errorf("%w: initiator and counterpart must be distinct", ErrInvalidInput)
	ErrEmptyReason          = fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	ErrNotCounterpart       = fmt.Errorf("%w: only the counterpart may respond", ErrNotAuthorized)
	ErrNotParticipant       = fmt.Errorf("%w: user is not a participant of this meeting", ErrNotAuthorized)
	ErrNotPending           = fmt.Errorf("%w: meeting is no longer pending", ErrInvalidState)
	ErrNotCancellable       = fmt.Errorf("%w: meeting can only be cancelled while pending or accepted", ErrInvalidState)
	ErrNotAccepted          = fmt.Errorf("%w: meeting is not accepted", ErrInvalidState)
	ErrInvalidDecision      = fmt.Errorf("%w: decision must be accept or reject", ErrInvalidInput)
)

// Cancellation errors
var (
	ErrCancellationNotFound = fmt.Errorf("%w: no cancellation record for this meeting", ErrInvalidState)
	ErrCannotAckOwnCancel   = fmt.Errorf("%w: the canceller cannot acknowledge their own cancellation", ErrNotAuthorized)
)

// Directory errors
var (
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrLookupFailure)
)
