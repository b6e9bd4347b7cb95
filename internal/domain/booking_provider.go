package domain

import (
	"context"
	"errors"
	"fmt"
)

type Attendee struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type ExternalBooking struct {
	ExternalRef   string
	ConfirmedSlot TimeSlot
}

// MetadataIdempotencyKey is the metadata entry providers use to deduplicate creates.
const MetadataIdempotencyKey = "idempotency_key"

// BookingProvider is the third-party calendar booking service.
type BookingProvider interface {
	CreateBooking(ctx context.Context, slot TimeSlot, attendees []Attendee, metadata map[string]string) (*ExternalBooking, error)
	CancelBooking(ctx context.Context, externalRef string) error
}

// ProviderError is returned by BookingProvider implementations.
type ProviderError struct {
	Retryable  bool
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("booking provider: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("booking provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRetryableProviderError classifies an error from a BookingProvider call.
// Per-attempt deadlines count as retryable; caller cancellation does not.
func IsRetryableProviderError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Retryable
	}
	return errors.Is(err, context.DeadlineExceeded)
}
