package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every failure a service returns on purpose wraps one of these;
// anything else is an internal error.
var (
	ErrInvalid            = errors.New("invalid request")
	ErrNotAcceptable      = errors.New("not acceptable")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInsufficientUpdate = errors.New("insufficient update")
	ErrNotMember          = errors.New("not a member")
)

// Error pairs a kind with the message shown to the client.
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

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message returns the client-facing text of err when it carries a kind.
func Message(err error) (string, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Message, true
	}
	return "", false
}

func errMissing(resource string) error {
	return newError(ErrNotFound, "the %s does not exist", resource)
}

func errNeedsChange() error {
	return newError(ErrInsufficientUpdate, "at least one field to change is required")
}

func requireID(name string, id uint) error {
	if id == 0 {
		return newError(ErrInvalid, "%s must be a positive integer", name)
	}
	return nil
}

// storeError maps a missing row to ErrNotFound and wraps everything else.
func storeError(op, resource string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errMissing(resource)
	}
	return fmt.Errorf("%s: %w", op, err)
}
