// Package apperror defines the closed set of failures the video gateway can
// report. Every core operation returns either a result or an *Error whose
// Kind tells the HTTP boundary how to answer.
//
// Match a kind with errors.Is against the sentinel values:
//
//	if errors.Is(err, apperror.ErrNotFound) {
//		...
//	}
//
// or unwrap the details with errors.As:
//
//	var appErr *apperror.Error
//	if errors.As(err, &appErr) {
//		fmt.Println(appErr.Status, appErr.Detail)
//	}
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation    Kind = "ValidationError"
	KindAuthRequired  Kind = "AuthRequiredError"
	KindAuth          Kind = "AuthError"
	KindNotFound      Kind = "NotFoundError"
	KindSchema        Kind = "SchemaError"
	KindUpstream      Kind = "UpstreamError"
	KindAuthExchange  Kind = "AuthExchangeError"
	KindConfiguration Kind = "ConfigurationError"
)

// Sentinels for errors.Is.
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrAuthRequired  = &Error{Kind: KindAuthRequired}
	ErrAuth          = &Error{Kind: KindAuth}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrSchema        = &Error{Kind: KindSchema}
	ErrUpstream      = &Error{Kind: KindUpstream}
	ErrAuthExchange  = &Error{Kind: KindAuthExchange}
	ErrConfiguration = &Error{Kind: KindConfiguration}
)

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "videos.update".
	Op      string
	Message string
	// Status is the upstream HTTP status when the remote platform answered.
	Status int
	// Detail carries the upstream response body or reason for diagnostics.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. Sentinels only
// carry a kind, so errors.Is(err, ErrNotFound) matches any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap builds an error of the given kind around a cause.
func Wrap(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindUpstream when err was never
// classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUpstream
}

// HTTPStatus maps err to the status code the HTTP boundary answers with.
// Unclassified errors degrade to 500.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthRequired:
		return http.StatusUnauthorized
	case KindAuth:
		if appErr.Status == http.StatusForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
