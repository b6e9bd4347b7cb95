package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-recruitment-scheduler/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const interviewColumns = `
	id::text, job_id, candidate_id, recruiter_id, slot_start, slot_end, timezone,
	status, external_booking_ref, idempotency_key, rescheduled_from::text, created_at, updated_at`

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

func activeStatuses() any {
	statuses := make([]string, 0, len(domain.ActiveInterviewStatuses))
	for _, s := range domain.ActiveInterviewStatuses {
		statuses = append(statuses, string(s))
	}
	return pq.Array(statuses)
}

// Reserve serializes on both owners with transaction-scoped advisory locks,
// re-checks duplicates and overlaps inside the transaction and inserts. The
// partial unique index on idempotency_key backs the duplicate check.
func (r *interviewRepo) Reserve(ctx context.Context, it *domain.ScheduledInterview) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	owners := []string{it.CandidateID, it.RecruiterID}
	sort.Strings(owners)
	for _, owner := range owners {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, "interview-owner:"+owner); err != nil {
			return fmt.Errorf("lock owner %s: %w", owner, err)
		}
	}

	ignore := it.RescheduledFrom
	if ignore != nil {
		if err := claimReplaceable(ctx, tx, *ignore); err != nil {
			return err
		}
	}

	dupQuery := `SELECT ` + interviewColumns + `
		FROM scheduled_interviews
		WHERE idempotency_key = $1 AND status = ANY($2)
		  AND ($3::uuid IS NULL OR id <> $3::uuid)
		LIMIT 1`
	existing, err := scanInterview(tx.QueryRow(ctx, dupQuery, it.IdempotencyKey, activeStatuses(), ignore))
	if err == nil {
		return &domain.ReservationError{Err: domain.ErrDuplicateRequest, Existing: existing}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	overlapQuery := `SELECT ` + interviewColumns + `
		FROM scheduled_interviews
		WHERE status = ANY($1)
		  AND (candidate_id IN ($2, $3) OR recruiter_id IN ($2, $3))
		  AND slot_start < $5 AND slot_end > $4
		  AND ($6::uuid IS NULL OR id <> $6::uuid)
		ORDER BY created_at
		LIMIT 1`
	existing, err = scanInterview(tx.QueryRow(ctx, overlapQuery,
		activeStatuses(), it.CandidateID, it.RecruiterID, it.Slot.Start, it.Slot.End, ignore))
	if err == nil {
		return &domain.ReservationError{Err: domain.ErrSlotConflict, Existing: existing}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.Status == "" {
		it.Status = domain.InterviewRequested
	}
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now

	insert := `
		INSERT INTO scheduled_interviews
			(id, job_id, candidate_id, recruiter_id, slot_start, slot_end, timezone,
			 status, external_booking_ref, idempotency_key, rescheduled_from, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::uuid, $12, $13)`
	_, err = tx.Exec(ctx, insert,
		it.ID, it.JobID, it.CandidateID, it.RecruiterID, it.Slot.Start, it.Slot.End, it.Slot.Timezone,
		string(it.Status), it.ExternalBookingRef, it.IdempotencyKey, it.RescheduledFrom, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "uq_interviews_active_replacement" {
				return &domain.ReservationError{Err: domain.ErrAlreadyRescheduled}
			}
			return &domain.ReservationError{Err: domain.ErrDuplicateRequest}
		}
		return err
	}

	return tx.Commit(ctx)
}

// claimReplaceable locks the source row of a reschedule and checks it is still
// confirmed with no active replacement. Both parties are already locked, so a
// concurrent reschedule of the same row waits here.
func claimReplaceable(ctx context.Context, tx pgx.Tx, sourceID string) error {
	if _, err := uuid.Parse(sourceID); err != nil {
		return domain.ErrNotFound
	}

	source, err := scanInterview(tx.QueryRow(ctx,
		`SELECT `+interviewColumns+` FROM scheduled_interviews WHERE id = $1::uuid FOR UPDATE`, sourceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if source.Status != domain.InterviewConfirmed {
		return &domain.ReservationError{Err: domain.ErrAlreadyRescheduled, Existing: source}
	}

	successorQuery := `SELECT ` + interviewColumns + `
		FROM scheduled_interviews
		WHERE rescheduled_from = $1::uuid AND status = ANY($2)
		LIMIT 1`
	successor, err := scanInterview(tx.QueryRow(ctx, successorQuery, sourceID, activeStatuses()))
	if err == nil {
		return &domain.ReservationError{Err: domain.ErrAlreadyRescheduled, Existing: successor}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.ScheduledInterview, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + interviewColumns + ` FROM scheduled_interviews WHERE id = $1::uuid`
	it, err := scanInterview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return it, err
}

func (r *interviewRepo) ListActiveByOwner(ctx context.Context, ownerID string) ([]domain.ScheduledInterview, error) {
	query := `SELECT ` + interviewColumns + `
		FROM scheduled_interviews
		WHERE status = ANY($1) AND (candidate_id = $2 OR recruiter_id = $2)
		ORDER BY slot_start`
	rows, err := r.db.Query(ctx, query, activeStatuses(), ownerID)
	if err != nil {
		return nil, err
	}
	return collectInterviews(rows)
}

func (r *interviewRepo) Transition(ctx context.Context, id string, from []domain.InterviewStatus, to domain.InterviewStatus, externalRef *string) (*domain.ScheduledInterview, error) {
	fromStrings := make([]string, 0, len(from))
	for _, s := range from {
		fromStrings = append(fromStrings, string(s))
	}

	query := `
		UPDATE scheduled_interviews
		SET status = $2, external_booking_ref = COALESCE($3, external_booking_ref), updated_at = NOW()
		WHERE id = $1::uuid AND status = ANY($4)
		RETURNING ` + interviewColumns
	it, err := scanInterview(r.db.QueryRow(ctx, query, id, string(to), externalRef, pq.Array(fromStrings)))
	if err == nil {
		return it, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrInvalidTransition
}

func (r *interviewRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.ScheduledInterview, error) {
	query := `SELECT ` + interviewColumns + `
		FROM scheduled_interviews
		WHERE status IN ($1, $2) AND updated_at < $3
		ORDER BY updated_at`
	rows, err := r.db.Query(ctx, query,
		string(domain.InterviewRequested), string(domain.InterviewPendingExternal), cutoff)
	if err != nil {
		return nil, err
	}
	return collectInterviews(rows)
}

func scanInterview(row pgx.Row) (*domain.ScheduledInterview, error) {
	var it domain.ScheduledInterview
	var status string
	err := row.Scan(
		&it.ID, &it.JobID, &it.CandidateID, &it.RecruiterID, &it.Slot.Start, &it.Slot.End, &it.Slot.Timezone,
		&status, &it.ExternalBookingRef, &it.IdempotencyKey, &it.RescheduledFrom, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Status = domain.InterviewStatus(status)
	return &it, nil
}

func collectInterviews(rows pgx.Rows) ([]domain.ScheduledInterview, error) {
	defer rows.Close()

	out := []domain.ScheduledInterview{}
	for rows.Next() {
		it, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}
