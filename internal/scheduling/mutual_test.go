package scheduling_test

import (
	"testing"
	"time"

	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/internal/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersect(t *testing.T) {
	candidate, err := scheduling.Generate(window(at(9, 0), at(12, 0)), time.Hour, scheduling.DefaultStep)
	require.NoError(t, err)
	recruiter, err := scheduling.Generate(window(at(10, 0), at(14, 0)), time.Hour, scheduling.DefaultStep)
	require.NoError(t, err)

	mutual := scheduling.Intersect(candidate, recruiter)

	require.Len(t, mutual, 3)
	assert.True(t, mutual[0].Start.Equal(at(10, 0)))
	assert.True(t, mutual[1].Start.Equal(at(10, 30)))
	assert.True(t, mutual[2].Start.Equal(at(11, 0)))
}

func TestIntersectComparesInstantsAcrossTimezones(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	a := []domain.TimeSlot{{Start: at(10, 0), End: at(11, 0), Timezone: "UTC"}}
	b := []domain.TimeSlot{{Start: at(10, 0).In(jakarta), End: at(11, 0).In(jakarta), Timezone: "Asia/Jakarta"}}

	mutual := scheduling.Intersect(a, b)
	require.Len(t, mutual, 1)
	assert.Equal(t, "UTC", mutual[0].Timezone)
}

func TestIntersectMisalignedGridsShareNothing(t *testing.T) {
	a := []domain.TimeSlot{{Start: at(10, 0), End: at(11, 0)}}
	b := []domain.TimeSlot{{Start: at(10, 15), End: at(11, 15)}}

	assert.Empty(t, scheduling.Intersect(a, b))
}

func TestIntersectFollowsFirstOrderAndDedupes(t *testing.T) {
	s1 := domain.TimeSlot{Start: at(12, 0), End: at(13, 0)}
	s2 := domain.TimeSlot{Start: at(9, 0), End: at(10, 0)}

	got := scheduling.Intersect([]domain.TimeSlot{s1, s2, s1}, []domain.TimeSlot{s2, s1})
	assert.Equal(t, []domain.TimeSlot{s1, s2}, got)
}
