package matching_test

import (
	"context"
	"fmt"
	"testing"

	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankerSortsDescendingAndStable(t *testing.T) {
	job := domain.JobRequirement{
		JobID:           7,
		RequiredSkills:  skills("Go", "PostgreSQL"),
		PreferredSkills: skills("Redis"),
	}
	candidates := []domain.CandidateProfile{
		{ID: "a", Skills: skills("Go")},
		{ID: "b", Skills: skills("Go", "PostgreSQL", "Redis")},
		{ID: "c", Skills: skills("PostgreSQL")},
		{ID: "d", Skills: nil},
		{ID: "e", Skills: skills("Go", "PostgreSQL")},
	}

	for _, workers := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			ranked, err := matching.NewRanker(workers).Rank(context.Background(), candidates, job)
			require.NoError(t, err)

			ids := make([]string, 0, len(ranked))
			for _, r := range ranked {
				ids = append(ids, r.Candidate.ID)
			}
			// a and c tie at 35 and keep input order.
			assert.Equal(t, []string{"b", "e", "a", "c", "d"}, ids)
			assert.Equal(t, 100, ranked[0].Match.Score)
			assert.Equal(t, 0, ranked[4].Match.Score)
		})
	}
}

func TestRankerManyTies(t *testing.T) {
	job := domain.JobRequirement{RequiredSkills: skills("Go")}
	candidates := make([]domain.CandidateProfile, 200)
	for i := range candidates {
		candidates[i] = domain.CandidateProfile{ID: fmt.Sprintf("c%03d", i), Skills: skills("Go")}
	}

	ranked, err := matching.NewRanker(8).Rank(context.Background(), candidates, job)
	require.NoError(t, err)
	for i, r := range ranked {
		assert.Equal(t, candidates[i].ID, r.Candidate.ID)
	}
}

func TestRankerEmptyPoolAndCancelledContext(t *testing.T) {
	ranked, err := matching.NewRanker(2).Rank(context.Background(), nil, domain.JobRequirement{})
	require.NoError(t, err)
	assert.Empty(t, ranked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = matching.NewRanker(2).Rank(ctx, []domain.CandidateProfile{{ID: "x"}}, domain.JobRequirement{})
	assert.ErrorIs(t, err, context.Canceled)
}
