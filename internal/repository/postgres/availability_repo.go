package postgres

import (
	"context"
	"time"

	"go-recruitment-scheduler/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type availabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) domain.AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Create(ctx context.Context, w *domain.AvailabilityWindow) error {
	query := `
		INSERT INTO availability_windows (owner_id, starts_at, ends_at, timezone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	if w.Status == "" {
		w.Status = domain.WindowAvailable
	}

	return r.db.QueryRow(ctx, query,
		w.OwnerID, w.Start, w.End, w.Timezone, string(w.Status), w.CreatedAt, w.UpdatedAt,
	).Scan(&w.ID)
}

func (r *availabilityRepo) ListByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]domain.AvailabilityWindow, error) {
	query := `
		SELECT id, owner_id, starts_at, ends_at, timezone, status, created_at, updated_at
		FROM availability_windows
		WHERE owner_id = $1 AND status = $2 AND starts_at < $4 AND ends_at > $3
		ORDER BY starts_at`

	rows, err := r.db.Query(ctx, query, ownerID, string(domain.WindowAvailable), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := []domain.AvailabilityWindow{}
	for rows.Next() {
		var w domain.AvailabilityWindow
		var status string
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Start, &w.End, &w.Timezone, &status, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		w.Status = domain.WindowStatus(status)
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *availabilityRepo) OwnerExists(ctx context.Context, ownerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id::text = $1)`, ownerID).Scan(&exists)
	return exists, err
}
