package domain

import "errors"

// Error kinds. Every client-visible failure wraps exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is a failure whose Message is safe to return to API clients.
type Error struct {
	Kind    error
	Message string
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(message string) *Error { return NewError(ErrValidation, message) }
func Conflict(message string) *Error   { return NewError(ErrConflict, message) }
func NotFound(message string) *Error   { return NewError(ErrNotFound, message) }
func Unauthorized(message string) *Error {
	return NewError(ErrUnauthorized, message)
}
