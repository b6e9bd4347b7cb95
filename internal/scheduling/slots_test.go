package scheduling_test

import (
	"testing"
	"time"

	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/internal/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func window(start, end time.Time) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{OwnerID: "rec-1", Start: start, End: end, Status: domain.WindowAvailable}
}

func TestGenerateTwoHourWindow(t *testing.T) {
	slots, err := scheduling.Generate(window(at(10, 0), at(12, 0)), time.Hour, scheduling.DefaultStep)
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.True(t, slots[0].Start.Equal(at(10, 0)))
	assert.True(t, slots[1].Start.Equal(at(10, 30)))
	assert.True(t, slots[2].Start.Equal(at(11, 0)))
	assert.True(t, slots[2].End.Equal(at(12, 0)))
}

func TestGenerateSlotCountFormula(t *testing.T) {
	tests := []struct {
		length, duration, step time.Duration
	}{
		{2 * time.Hour, time.Hour, 30 * time.Minute},
		{2 * time.Hour, 45 * time.Minute, 30 * time.Minute},
		{90 * time.Minute, 90 * time.Minute, 15 * time.Minute},
		{30 * time.Minute, time.Hour, 30 * time.Minute},
		{8 * time.Hour, 30 * time.Minute, 20 * time.Minute},
		{time.Hour, 25 * time.Minute, time.Hour},
	}
	for _, tt := range tests {
		w := window(at(9, 0), at(9, 0).Add(tt.length))
		slots, err := scheduling.Generate(w, tt.duration, tt.step)
		require.NoError(t, err)

		want := 0
		if tt.length >= tt.duration {
			want = int((tt.length-tt.duration)/tt.step) + 1
		}
		assert.Len(t, slots, want, "length=%s duration=%s step=%s", tt.length, tt.duration, tt.step)
		for _, s := range slots {
			assert.False(t, s.End.After(w.End))
			assert.Equal(t, tt.duration, s.Duration())
		}
	}
}

func TestGenerateShortWindowIsEmptyNotError(t *testing.T) {
	slots, err := scheduling.Generate(window(at(10, 0), at(10, 45)), time.Hour, scheduling.DefaultStep)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	_, err := scheduling.Generate(window(at(10, 0), at(10, 0)), time.Hour, scheduling.DefaultStep)
	assert.ErrorIs(t, err, scheduling.ErrInvalidWindow)

	_, err = scheduling.Generate(window(at(10, 0), at(12, 0)), 0, scheduling.DefaultStep)
	assert.ErrorIs(t, err, scheduling.ErrInvalidDuration)

	_, err = scheduling.Generate(window(at(10, 0), at(12, 0)), time.Hour, 0)
	assert.ErrorIs(t, err, scheduling.ErrInvalidStep)
}

func TestSlotsIsLazyAndRestartable(t *testing.T) {
	seq, err := scheduling.Slots(window(at(0, 0), at(23, 0)), 30*time.Minute, 30*time.Minute)
	require.NoError(t, err)

	taken := 0
	for range seq {
		taken++
		if taken == 2 {
			break
		}
	}
	assert.Equal(t, 2, taken)

	var first domain.TimeSlot
	for s := range seq {
		first = s
		break
	}
	assert.True(t, first.Start.Equal(at(0, 0)))
}

func TestGenerateKeepsWindowTimezone(t *testing.T) {
	w := window(at(3, 0), at(5, 0))
	w.Timezone = "Asia/Jakarta"
	slots, err := scheduling.Generate(w, time.Hour, time.Hour)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, "Asia/Jakarta", slots[0].Timezone)
	assert.Equal(t, 10, slots[0].Start.Hour())
	assert.True(t, slots[0].Start.Equal(at(3, 0)))
}
