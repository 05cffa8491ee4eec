package usecase

import (
	"errors"

	"dorm-booking/pkg/utils"
)

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidDateOrder      = errors.New("check-out date is before check-in date")
	ErrCapacityExceeded      = errors.New("number of people exceeds room capacity")
	ErrRoomAlreadyTaken      = errors.New("room already taken")
	ErrInvalidDateRange      = errors.New("invalid date range")
	ErrInsufficientInventory = errors.New("not enough rooms in catalog")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrUserNotFound          = errors.New("user not found")
	ErrAlreadyExists         = errors.New("already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// AdmissionError is a rejection the caller can show to the user. Kind is one
// of the sentinels above so callers can match it with errors.Is.
type AdmissionError struct {
	Kind    error
	Field   string
	Message string
	Fields  map[string]string
}

func (e *AdmissionError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	if len(e.Fields) > 0 {
		return e.Message + ": " + utils.FormatValidationErrors(e.Fields)
	}
	return e.Message
}

func (e *AdmissionError) Unwrap() error {
	return e.Kind
}

// FieldErrors returns the per-field messages, including Field when set.
func (e *AdmissionError) FieldErrors() map[string]string {
	errs := make(map[string]string, len(e.Fields)+1)
	for k, v := range e.Fields {
		errs[k] = v
	}
	if e.Field != "" {
		if _, ok := errs[e.Field]; !ok {
			errs[e.Field] = e.Message
		}
	}
	return errs
}

func rejection(kind error, field, message string) *AdmissionError {
	return &AdmissionError{Kind: kind, Field: field, Message: message}
}
