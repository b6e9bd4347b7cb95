package domain

import "context"

type CandidateProfile struct {
	ID     string  `json:"id"`
	Name   string  `json:"name,omitempty"`
	Skills []Skill `json:"skills"`
}

// CandidateRepository is the read-only candidate data source.
type CandidateRepository interface {
	GetByID(ctx context.Context, id string) (*CandidateProfile, error)
	// ListByJob returns the candidate pool for a job in application order.
	ListByJob(ctx context.Context, jobID int64) ([]CandidateProfile, error)
}
