// Package apperror carries HTTP status codes through the service layer so
// the Fiber error handler can answer without knowing every error type.
package apperror

import (
	"errors"
	"net/http"

	"promptito-be/pkg/builder/compose"
	"promptito-be/pkg/schema"
)

var (
	ErrNotFound        = New("resource not found", http.StatusNotFound)
	ErrForbidden       = New("forbidden", http.StatusForbidden)
	ErrUnauthorized    = New("authentication required", http.StatusUnauthorized)
	ErrFeatureDisabled = New("feature is disabled on this server", http.StatusServiceUnavailable)
	ErrConflict        = New("resource already exists", http.StatusConflict)
)

type CodedError struct {
	err  error
	code int
}

func (e *CodedError) Error() string {
	return e.err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.err
}

func (e *CodedError) HTTPCode() int {
	return e.code
}

// WithCode wraps err with an HTTP status. A nil err stays nil.
func WithCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &CodedError{err: err, code: code}
}

func New(message string, code int) error {
	return &CodedError{err: errors.New(message), code: code}
}

func BadRequest(message string) error {
	return New(message, http.StatusBadRequest)
}

// Code resolves the status for err: 200 for nil, the innermost coded status
// when present, 422 for a blocked gate, 400 for schema violations and 500
// otherwise.
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}
	var blocked *compose.BlockedError
	if errors.As(err, &blocked) {
		return http.StatusUnprocessableEntity
	}
	var invalid *schema.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Blocked extracts the gate failure from err.
func Blocked(err error) (*compose.BlockedError, bool) {
	var blocked *compose.BlockedError
	ok := errors.As(err, &blocked)
	return blocked, ok
}
