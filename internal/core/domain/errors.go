package domain

import "errors"

var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// Error pairs an error kind with a message that is safe to show to callers.
// It unwraps to its kind, so errors.Is(err, ErrBadRequest) holds for a
// BadRequest built here.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// BadRequest reports malformed or missing input.
func BadRequest(msg string) error {
	return &Error{Kind: ErrBadRequest, Message: msg}
}

// Conflict reports a uniqueness violation.
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// InvalidCredentials reports an authentication failure with a custom message.
func InvalidCredentials(msg string) error {
	return &Error{Kind: ErrInvalidCredentials, Message: msg}
}

// Unauthorized reports a missing or stale session with a custom message.
func Unauthorized(msg string) error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}
