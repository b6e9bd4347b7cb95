package domain

import "context"

type FitTier string

const (
	FitExcellent FitTier = "excellent"
	FitGood      FitTier = "good"
	FitFair      FitTier = "fair"
	FitPoor      FitTier = "poor"
)

// FitTierForScore buckets a 0..100 score.
func FitTierForScore(score int) FitTier {
	switch {
	case score >= 80:
		return FitExcellent
	case score >= 60:
		return FitGood
	case score >= 40:
		return FitFair
	default:
		return FitPoor
	}
}

// MatchResult is a projection computed on demand; it is never persisted.
type MatchResult struct {
	Score          int     `json:"score"`
	MatchingSkills []Skill `json:"matching_skills"`
	SkillGaps      []Skill `json:"skill_gaps"`
	FitTier        FitTier `json:"fit_tier"`
}

type RankedCandidate struct {
	Candidate CandidateProfile `json:"candidate"`
	Match     MatchResult      `json:"match"`
}

type MatchingUsecase interface {
	RankCandidates(ctx context.Context, jobID int64, minScore int) ([]RankedCandidate, error)
	MatchCandidate(ctx context.Context, jobID int64, candidateID string) (*RankedCandidate, error)
}
