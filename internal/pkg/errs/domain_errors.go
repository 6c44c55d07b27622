package errs

import "errors"

// Sentinel errors returned by the scheduling engine. All are recoverable,
// typed results: conflict is a legitimate outcome, not a fault, so the engine
// never retries internally. Only ErrStorageUnavailable is eligible for
// caller-side retry with backoff.
var (
	// Ledger errors
	ErrBookingConflict   = errors.New("time slot already booked")
	ErrDuplicateRequest  = errors.New("duplicate booking request")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// Availability errors
	ErrUnknownService = errors.New("unknown service")

	// Validation errors
	ErrValidation = errors.New("validation error")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
