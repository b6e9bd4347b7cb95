package domain

import "errors"

// Common domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrSlotConflict      = errors.New("slot conflicts with an existing interview")
	ErrDuplicateRequest  = errors.New("identical interview request is already active")
	ErrInvalidTransition = errors.New("invalid interview status transition")
	// ErrAlreadyRescheduled: the interview being replaced is no longer
	// confirmed or already has an active replacement.
	ErrAlreadyRescheduled = errors.New("interview already has an active replacement")
)

// ReservationError carries the record that blocked a reservation.
type ReservationError struct {
	Err      error
	Existing *ScheduledInterview
}

func (e *ReservationError) Error() string {
	if e.Existing != nil {
		return e.Err.Error() + " (interview " + e.Existing.ID + ")"
	}
	return e.Err.Error()
}

func (e *ReservationError) Unwrap() error {
	return e.Err
}
