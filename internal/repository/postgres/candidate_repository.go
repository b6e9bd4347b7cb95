package postgres

import (
	"context"

	"go-recruitment-scheduler/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	query := `
		SELECT u.id::text, COALESCE(u.full_name, ''), cs.name, cs.proficiency, cs.category
		FROM users u
		LEFT JOIN candidate_skills cs ON cs.user_id = u.id
		WHERE u.id::text = $1
		ORDER BY cs.position`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	profiles, err := collectProfiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domain.ErrNotFound
	}
	return &profiles[0], nil
}

// ListByJob returns everyone who applied to the job, oldest application first.
func (r *candidateRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.CandidateProfile, error) {
	query := `
		SELECT a.candidate_user_id::text, COALESCE(u.full_name, ''), cs.name, cs.proficiency, cs.category
		FROM applications a
		LEFT JOIN users u ON u.id = a.candidate_user_id
		LEFT JOIN candidate_skills cs ON cs.user_id = a.candidate_user_id
		WHERE a.job_id = $1
		ORDER BY a.created_at, a.candidate_user_id, cs.position`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	return collectProfiles(rows)
}

// collectProfiles folds (candidate, skill) rows into profiles, keeping row order.
func collectProfiles(rows pgx.Rows) ([]domain.CandidateProfile, error) {
	defer rows.Close()

	profiles := []domain.CandidateProfile{}
	index := map[string]int{}
	for rows.Next() {
		var id, name string
		var skill, proficiency, category *string
		if err := rows.Scan(&id, &name, &skill, &proficiency, &category); err != nil {
			return nil, err
		}

		i, ok := index[id]
		if !ok {
			profiles = append(profiles, domain.CandidateProfile{ID: id, Name: name, Skills: []domain.Skill{}})
			i = len(profiles) - 1
			index[id] = i
		}
		if skill != nil {
			profiles[i].Skills = append(profiles[i].Skills, domain.Skill{
				Name:        *skill,
				Proficiency: domain.Proficiency(deref(proficiency)),
				Category:    deref(category),
			})
		}
	}
	return profiles, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
