package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories, services and the HTTP layer.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrEventNotFound = fmt.Errorf("event %w", ErrNotFound)

	// ErrMissingField and ErrInvalidInput are wrapped with the offending field or value.
	ErrMissingField = errors.New("missing required field")
	ErrInvalidInput = errors.New("invalid input")

	ErrDuplicateEmail     = errors.New("email already taken")
	ErrNoFields           = errors.New("no valid fields provided for update")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
	ErrEventCompleted    = errors.New("event is completed and can no longer be modified")
	ErrAlreadyCompleted  = errors.New("event is already marked as completed")

	ErrRegisterFailed   = errors.New("register failed")
	ErrUnregisterFailed = errors.New("unregister failed")
	ErrCompleteFailed   = errors.New("complete failed")
)
