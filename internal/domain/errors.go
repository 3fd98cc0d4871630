package domain

import "errors"

var (
	// ErrDayNotFound the date has no day booking yet (not an error for the customer flow)
	ErrDayNotFound = errors.New("day booking not found")
	// ErrDetailNotFound booking detail doesn't exist
	ErrDetailNotFound = errors.New("booking detail not found")
	// ErrValidation invalid input (bad date, unknown lesson, group too long, date in the past)
	ErrValidation = errors.New("validation failed")
	// ErrSlotTaken (lesson, tv) is already booked for the date
	ErrSlotTaken = errors.New("slot already booked")
	// ErrDayAlreadyExists the date already has a day booking, append instead of create
	ErrDayAlreadyExists = errors.New("day booking already exists")
	// ErrUnavailable transport failure or backend 5xx
	ErrUnavailable = errors.New("booking service unavailable")
	// ErrUnauthorized missing or expired session
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden the user is not allowed to touch the resource
	ErrForbidden = errors.New("forbidden")
)

// ErrorKind is the user-facing classification of a failure
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNetwork    ErrorKind = "network"
	KindAuth       ErrorKind = "auth"
	KindUnknown    ErrorKind = "unknown"
)

// ClassifyError maps a (possibly wrapped) error onto ErrorKind
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrDayNotFound), errors.Is(err, ErrDetailNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrDayAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrUnavailable):
		return KindNetwork
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return KindAuth
	default:
		return KindUnknown
	}
}
