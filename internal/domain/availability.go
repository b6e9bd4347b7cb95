package domain

import (
	"context"
	"time"
)

type WindowStatus string

const (
	WindowAvailable WindowStatus = "available"
	WindowBooked    WindowStatus = "booked"
)

// TimeSlot is a half-open interval [Start, End).
type TimeSlot struct {
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required,gtfield=Start"`
	Timezone string    `json:"timezone,omitempty" validate:"omitempty,valid_timezone"`
}

func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps is the half-open interval test. It is symmetric.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// SameInstant compares instants, ignoring the location each side is expressed in.
func (s TimeSlot) SameInstant(other TimeSlot) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End)
}

// AvailabilityWindow is a materialized free window declared by its owner.
type AvailabilityWindow struct {
	ID        int64        `json:"id"`
	OwnerID   string       `json:"owner_id" validate:"required,owner_id"`
	Start     time.Time    `json:"start" validate:"required"`
	End       time.Time    `json:"end" validate:"required,gtfield=Start"`
	Timezone  string       `json:"timezone" validate:"omitempty,valid_timezone"`
	Status    WindowStatus `json:"status" validate:"omitempty,oneof=available booked"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type AvailabilityRepository interface {
	Create(ctx context.Context, window *AvailabilityWindow) error
	// ListByOwner returns available windows overlapping [from, to), ordered by start.
	ListByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]AvailabilityWindow, error)
	OwnerExists(ctx context.Context, ownerID string) (bool, error)
}

type SlotQuery struct {
	OwnerID  string
	Duration time.Duration
	From     time.Time
	To       time.Time
}

type AvailabilityUsecase interface {
	AddWindow(ctx context.Context, window *AvailabilityWindow) error
	GetAvailableSlots(ctx context.Context, q SlotQuery) ([]TimeSlot, error)
	GetMutualSlots(ctx context.Context, candidateID, recruiterID string, duration time.Duration, from, to time.Time) ([]TimeSlot, error)
}
