// Package scheduling turns availability windows into bookable slots and
// checks slots against committed interviews.
package scheduling

import (
	"errors"
	"iter"
	"slices"
	"time"
	_ "time/tzdata"

	"go-recruitment-scheduler/internal/domain"
)

const DefaultStep = 30 * time.Minute

var (
	ErrInvalidDuration = errors.New("slot duration must be positive")
	ErrInvalidStep     = errors.New("slot step must be positive")
	ErrInvalidWindow   = errors.New("availability window must start before it ends")
)

// Slots lazily walks window in step increments, yielding [cursor, cursor+duration)
// while it fits inside the window. Each range over the sequence starts again
// from window.Start.
func Slots(window domain.AvailabilityWindow, duration, step time.Duration) (iter.Seq[domain.TimeSlot], error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	if !window.Start.Before(window.End) {
		return nil, ErrInvalidWindow
	}

	loc := location(window.Timezone)
	return func(yield func(domain.TimeSlot) bool) {
		for cursor := window.Start; !cursor.Add(duration).After(window.End); cursor = cursor.Add(step) {
			slot := domain.TimeSlot{
				Start:    cursor.In(loc),
				End:      cursor.Add(duration).In(loc),
				Timezone: window.Timezone,
			}
			if !yield(slot) {
				return
			}
		}
	}, nil
}

// Generate collects Slots. A window shorter than duration yields no slots.
func Generate(window domain.AvailabilityWindow, duration, step time.Duration) ([]domain.TimeSlot, error) {
	seq, err := Slots(window, duration, step)
	if err != nil {
		return nil, err
	}
	out := slices.Collect(seq)
	if out == nil {
		out = []domain.TimeSlot{}
	}
	return out, nil
}

func location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
