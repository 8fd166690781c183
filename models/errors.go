package models

import (
	"errors"
	"fmt"
)

// ErrorKind tags a structured failure returned across the analytics boundary.
type ErrorKind string

const (
	ErrInvalidRange ErrorKind = "INVALID_RANGE"
	ErrNotFound     ErrorKind = "NOT_FOUND"
	ErrInvalidData  ErrorKind = "INVALID_DATA"
	ErrEmpty        ErrorKind = "EMPTY"
	ErrNoData       ErrorKind = "NO_DATA"
	ErrBadRequest   ErrorKind = "BAD_REQUEST"
)

// Error is the only error type returned by the forecasting, analytics and
// ingest packages.
type Error struct {
	Kind    ErrorKind `json:"error"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a tagged error.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the tag of err, or "" when err is not a *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
