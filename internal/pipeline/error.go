package pipeline

import (
	"fmt"
	"net/http"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindValidation marks a malformed, missing, or inconsistent field.
	KindValidation Kind = iota
	// KindNotFound marks a referenced id that is absent from the store.
	KindNotFound
	// KindStateConflict marks an operation disallowed by the record's
	// current lifecycle state.
	KindStateConflict
)

// Error is a guard-step failure. It carries the HTTP status to answer with
// and the exact message for the caller; the caller must correct the input or
// the record state, so none of these are retryable as-is.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Invalid builds a 400 validation failure.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a 404 failure for an absent record.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a 400 failure for a lifecycle-state violation.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindStateConflict, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}
