package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidName  = errors.New("invalid name")

	// Meeting errors
	ErrInvalidMeetingState = errors.New("invalid meeting state")
	ErrInvalidParty        = errors.New("invalid party")
)
