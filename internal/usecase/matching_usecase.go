package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/internal/matching"
	"go-recruitment-scheduler/internal/metrics"
	"go-recruitment-scheduler/pkg/apperror"

	"github.com/samber/lo"
)

type matchingUsecase struct {
	candidateRepo domain.CandidateRepository
	jobRepo       domain.JobRepository
	ranker        *matching.Ranker
	logger        *slog.Logger
}

// NewMatchingUsecase creates a new matching usecase
func NewMatchingUsecase(
	candidateRepo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	ranker *matching.Ranker,
	logger *slog.Logger,
) domain.MatchingUsecase {
	return &matchingUsecase{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		ranker:        ranker,
		logger:        logger,
	}
}

// RankCandidates scores every applicant of the job and drops those below minScore.
func (uc *matchingUsecase) RankCandidates(ctx context.Context, jobID int64, minScore int) ([]domain.RankedCandidate, error) {
	if minScore < 0 || minScore > 100 {
		return nil, apperror.BadRequest("min_score must be between 0 and 100")
	}

	job, err := uc.requirement(ctx, jobID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.candidateRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	started := time.Now()
	ranked, err := uc.ranker.Rank(ctx, candidates, *job)
	metrics.RankingDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	filtered := lo.Filter(ranked, func(rc domain.RankedCandidate, _ int) bool {
		return rc.Match.Score >= minScore
	})
	uc.logger.Debug("ranked candidates", "job_id", jobID, "pool", len(candidates), "returned", len(filtered))
	return filtered, nil
}

func (uc *matchingUsecase) MatchCandidate(ctx context.Context, jobID int64, candidateID string) (*domain.RankedCandidate, error) {
	job, err := uc.requirement(ctx, jobID)
	if err != nil {
		return nil, err
	}

	candidate, err := uc.candidateRepo.GetByID(ctx, candidateID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Candidate not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.RankedCandidate{
		Candidate: *candidate,
		Match:     matching.Match(candidate.Skills, job.RequiredSkills, job.PreferredSkills),
	}, nil
}

func (uc *matchingUsecase) requirement(ctx context.Context, jobID int64) (*domain.JobRequirement, error) {
	job, err := uc.jobRepo.GetRequirement(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}
