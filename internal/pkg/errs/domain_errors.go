package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the usecase and handler layers
var (
	// Session errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrTokenExpired    = fmt.Errorf("token expired: %w", ErrUnauthenticated)

	// Upstream errors
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamRejected    = errors.New("upstream rejected request")

	// Booking errors
	ErrBookingNotFound     = errors.New("booking not found")
	ErrSlotUnavailable     = errors.New("slot no longer available")
	ErrOvernightBooking    = errors.New("booking crosses midnight")
	ErrBookingValidation   = errors.New("booking validation failed")
	ErrNoDraft             = errors.New("no booking draft")
	ErrSubmissionInProcess = errors.New("booking submission in progress")

	// Storage errors
	ErrStorageOperationFailed = errors.New("storage operation failed")
)
