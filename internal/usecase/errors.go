package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so callers can tell them apart without
// parsing messages.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindStorageUnavailable ErrorKind = "storage_unavailable"
)

type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error // underlying cause, storage faults only
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %s: %v", e.Status, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) error {
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &AppError{Kind: KindConflict, Status: http.StatusConflict, Message: message}
}

func NewStorageError(err error) error {
	return &AppError{
		Kind:    KindStorageUnavailable,
		Status:  http.StatusServiceUnavailable,
		Message: "storage unavailable",
		Err:     err,
	}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ae, ok := AsAppError(err)
	return ok && ae.Kind == kind
}
