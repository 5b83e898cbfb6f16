// Package apierror defines the error taxonomy shared by every service and the
// HTTP layer. All business-rule violations are detected before any state is
// mutated, so an error from a service always means the ledger is untouched.
package apierror

import (
	"fmt"
	"net/http"
)

// Kind classifies an error for callers that need to branch on the cause.
type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindNotFound            Kind = "not_found"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindNoOpenSession       Kind = "no_open_session"
	KindAlreadyOpen         Kind = "already_open"
	KindInsufficientPayment Kind = "insufficient_payment"
	KindInternal            Kind = "internal_error"
)

// Error is the canonical error envelope. It doubles as the JSON body of every
// 4xx response so internal details never leak to clients.
type Error struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string { return e.Detail }

// Is lets errors.Is match two apierrors by Kind regardless of detail text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// HTTPStatus maps the kind to the status code the handler layer responds with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInsufficientPayment:
		return http.StatusUnprocessableEntity
	case KindInsufficientStock, KindNoOpenSession, KindAlreadyOpen:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// New wraps a message that maps to a plain 500/429-style response.
func New(msg string) *Error {
	return &Error{Kind: KindInternal, Detail: msg}
}

func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return newf(KindInsufficientStock, format, args...)
}

func NoOpenSession(format string, args ...interface{}) *Error {
	return newf(KindNoOpenSession, format, args...)
}

func AlreadyOpen(format string, args ...interface{}) *Error {
	return newf(KindAlreadyOpen, format, args...)
}

func InsufficientPayment(format string, args ...interface{}) *Error {
	return newf(KindInsufficientPayment, format, args...)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
