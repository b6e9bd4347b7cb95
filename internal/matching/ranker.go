package matching

import (
	"context"
	"sort"

	"go-recruitment-scheduler/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Ranker scores a candidate pool concurrently. Scoring is pure, so workers
// share only read-only inputs.
type Ranker struct {
	workers int
}

func NewRanker(workers int) *Ranker {
	if workers < 1 {
		workers = 1
	}
	return &Ranker{workers: workers}
}

// Rank returns every candidate with its match result, sorted by score
// descending. Equal scores keep input order. It does not filter.
func (r *Ranker) Rank(ctx context.Context, candidates []domain.CandidateProfile, job domain.JobRequirement) ([]domain.RankedCandidate, error) {
	results := make([]domain.RankedCandidate, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = domain.RankedCandidate{
				Candidate: candidates[i],
				Match:     Match(candidates[i].Skills, job.RequiredSkills, job.PreferredSkills),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Match.Score > results[j].Match.Score
	})
	return results, nil
}
