package tradeapi

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the console can surface.
type ErrorKind string

const (
	KindTransport       ErrorKind = "transport"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindRejected        ErrorKind = "rejected"
	KindValidation      ErrorKind = "validation"
)

var ErrNoToken = errors.New("no session token")

// Error is the single error type of the client boundary.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Fields holds per-field messages for KindValidation.
	Fields map[string]string
	Err    error
}

func newError(kind ErrorKind, status int, msg string, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Rejected builds the error for a 2xx mutation whose success payload was falsy.
func Rejected(format string, args ...any) *Error {
	return newError(KindRejected, 0, fmt.Sprintf(format, args...), nil)
}

// Invalid builds a validation error from per-field messages.
func Invalid(fields map[string]string) *Error {
	e := newError(KindValidation, 0, "validation failed", nil)
	e.Fields = fields
	return e
}

// KindOf returns the kind of err, KindTransport for foreign errors.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransport
}

// IsUnauthenticated reports whether err means there is no usable session.
func IsUnauthenticated(err error) bool {
	return err != nil && KindOf(err) == KindUnauthenticated
}

// Result is the tagged outcome of one backend operation.
type Result[T any] struct {
	OK    bool
	Value T
	Err   *Error
}

// Do runs fn and folds its outcome into a Result.
func Do[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	v, err := fn(ctx)
	if err == nil {
		return Result[T]{OK: true, Value: v}
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = newError(KindTransport, 0, err.Error(), err)
	}
	return Result[T]{Err: apiErr}
}
