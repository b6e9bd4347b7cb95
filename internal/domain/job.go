package domain

import "context"

// JobRequirement is the skill side of a job posting. It is treated as
// immutable for the duration of a scoring pass.
type JobRequirement struct {
	JobID           int64   `json:"job_id"`
	Title           string  `json:"title,omitempty"`
	RequiredSkills  []Skill `json:"required_skills"`
	PreferredSkills []Skill `json:"preferred_skills"`
}

type JobRepository interface {
	GetRequirement(ctx context.Context, jobID int64) (*JobRequirement, error)
}
