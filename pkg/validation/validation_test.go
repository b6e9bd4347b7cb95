package validation_test

import (
	"testing"
	"time"

	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/pkg/validation"

	"github.com/stretchr/testify/assert"
)

func TestScheduleRequestValidation(t *testing.T) {
	v := validation.New()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	valid := domain.ScheduleRequest{
		JobID:           1,
		CandidateID:     "cand-1",
		RecruiterID:     "rec-1",
		DurationMinutes: 60,
		PreferredSlots: []domain.TimeSlot{
			{Start: start, End: start.Add(time.Hour), Timezone: "Asia/Jakarta"},
		},
	}

	t.Run("Valid request passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(valid))
	})

	t.Run("Unknown timezone is rejected", func(t *testing.T) {
		req := valid
		req.PreferredSlots = []domain.TimeSlot{{Start: start, End: start.Add(time.Hour), Timezone: "Mars/Olympus"}}
		err := v.Struct(req)
		assert.Error(t, err)
		assert.Contains(t, validation.FormatValidationErrors(err), "Timezone must be an IANA timezone name")
	})

	t.Run("End before start is rejected", func(t *testing.T) {
		req := valid
		req.PreferredSlots = []domain.TimeSlot{{Start: start, End: start.Add(-time.Hour)}}
		err := v.Struct(req)
		assert.Error(t, err)
		assert.Contains(t, validation.FormatValidationErrors(err), "End time must be after Start time")
	})

	t.Run("Empty preferred slots are rejected", func(t *testing.T) {
		req := valid
		req.PreferredSlots = nil
		err := v.Struct(req)
		assert.Error(t, err)
		assert.Contains(t, validation.FormatValidationErrors(err), "Preferred slots is required")
	})

	t.Run("Same candidate and recruiter is rejected", func(t *testing.T) {
		req := valid
		req.RecruiterID = req.CandidateID
		assert.Error(t, v.Struct(req))
	})
}

func TestOwnerIDValidation(t *testing.T) {
	v := validation.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	window := domain.AvailabilityWindow{
		OwnerID: "rec 1; drop",
		Start:   start,
		End:     start.Add(8 * time.Hour),
	}

	err := v.Struct(window)
	assert.Error(t, err)
	assert.Contains(t, validation.FormatValidationErrors(err), "Owner has an invalid format")

	window.OwnerID = "5f0c6a7e-1b2d-4c3e-8f9a-0b1c2d3e4f5a"
	assert.NoError(t, v.Struct(window))
}
