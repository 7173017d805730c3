package services

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindInvalidState      ErrorKind = "invalid_state"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindConflict          ErrorKind = "conflict"
)

// Error is returned for every rejected operation. Anything else coming out of
// this package is a storage failure.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches any *Error of the same kind, so callers can test against the
// sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidState      = &Error{Kind: KindInvalidState}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrConflict          = &Error{Kind: KindConflict}
)

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationErrorf(format string, args ...interface{}) error {
	return newError(KindValidation, format, args...)
}

func notFoundf(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

func invalidStatef(format string, args ...interface{}) error {
	return newError(KindInvalidState, format, args...)
}

func invalidTransitionf(format string, args ...interface{}) error {
	return newError(KindInvalidTransition, format, args...)
}

func conflictf(format string, args ...interface{}) error {
	return newError(KindConflict, format, args...)
}

// KindOf returns the kind of a service error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
