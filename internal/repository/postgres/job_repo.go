package postgres

import (
	"context"
	"errors"

	"go-recruitment-scheduler/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) GetRequirement(ctx context.Context, jobID int64) (*domain.JobRequirement, error) {
	req := &domain.JobRequirement{
		JobID:           jobID,
		RequiredSkills:  []domain.Skill{},
		PreferredSkills: []domain.Skill{},
	}

	err := r.db.QueryRow(ctx, `SELECT title FROM jobs WHERE id = $1`, jobID).Scan(&req.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	query := `
		SELECT name, COALESCE(proficiency, ''), COALESCE(category, ''), is_required
		FROM job_skills
		WHERE job_id = $1
		ORDER BY position`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Skill
		var proficiency string
		if err := rows.Scan(&s.Name, &proficiency, &s.Category, &s.Required); err != nil {
			return nil, err
		}
		s.Proficiency = domain.Proficiency(proficiency)
		if s.Required {
			req.RequiredSkills = append(req.RequiredSkills, s)
		} else {
			req.PreferredSkills = append(req.PreferredSkills, s)
		}
	}
	return req, rows.Err()
}
