// Package apperrors defines the error taxonomy shared by repositories, services and handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindSlotUnavailable   Kind = "SLOT_UNAVAILABLE"
	KindDoctorUnavailable Kind = "DOCTOR_UNAVAILABLE"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindConflict          Kind = "CONFLICT"
	KindPersistence       Kind = "PERSISTENCE"
)

// Error is the concrete error type returned across layers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func SlotUnavailable() *Error {
	return &Error{Kind: KindSlotUnavailable, Message: "Slot Not Available"}
}

func DoctorUnavailable() *Error {
	return &Error{Kind: KindDoctorUnavailable, Message: "Doctor Not Available"}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NotOwner is returned when an authenticated actor touches a resource that is not theirs.
func NotOwner() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized action"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindPersistence for errors outside the taxonomy.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Message returns the client-safe message for err.
// Persistence failures never leak driver details.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindPersistence {
			return "Something went wrong, please try again"
		}
		return appErr.Message
	}
	return "Something went wrong, please try again"
}

// HTTPStatus maps err onto a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindSlotUnavailable, KindDoctorUnavailable, KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
