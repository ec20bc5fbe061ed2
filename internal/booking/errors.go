package booking

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed domain error carrying a machine-readable code and the
// HTTP status a transport layer should map it to.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is allows errors.Is comparisons against the predefined sentinels by code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates a typed error.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches a cause to a typed error, keeping its code and status.
func Wrap(base *Error, err error) *Error {
	return &Error{Code: base.Code, Status: base.Status, Message: base.Message, Err: err}
}

// WithMessage returns a copy of base with a more specific message.
func WithMessage(base *Error, format string, args ...any) *Error {
	return &Error{Code: base.Code, Status: base.Status, Message: fmt.Sprintf(format, args...)}
}

// Validation and lifecycle failures are detected synchronously and never
// retried here; retry is the caller's choice.
var (
	ErrNotFound            = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrRoomUnavailable     = New("ROOM_UNAVAILABLE", http.StatusBadRequest, "room not found or not available")
	ErrCapacityExceeded    = New("CAPACITY_EXCEEDED", http.StatusBadRequest, "attendee count exceeds room capacity")
	ErrInvalidInterval     = New("INVALID_INTERVAL", http.StatusBadRequest, "end time must be after start time")
	ErrPastDated           = New("PAST_DATED", http.StatusBadRequest, "cannot book meetings in the past")
	ErrDurationExceeded    = New("DURATION_EXCEEDED", http.StatusBadRequest, "booking duration cannot exceed 24 hours")
	ErrConflict            = New("CONFLICT", http.StatusConflict, "room is already booked for this time slot")
	ErrAlreadyCancelled    = New("ALREADY_CANCELLED", http.StatusConflict, "booking is already cancelled")
	ErrBookingNotActive    = New("NOT_ACTIVE", http.StatusConflict, "booking is no longer active")
	ErrForbidden           = New("FORBIDDEN", http.StatusForbidden, "access denied")
	ErrInvalidRecurrence   = New("INVALID_RECURRENCE", http.StatusBadRequest, "malformed recurrence rule")
	ErrStore               = New("STORE_ERROR", http.StatusInternalServerError, "storage failure")
)

// FromError normalises any error into an *Error; unknown errors become
// store-level infrastructure failures rather than validation errors.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(ErrStore, err)
}
