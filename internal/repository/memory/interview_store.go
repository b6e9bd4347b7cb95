// Package memory is a process-local InterviewRepository. Reserve is atomic
// under a single mutex, which gives the same guarantee the Postgres
// repository gets from advisory locks.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"go-recruitment-scheduler/internal/domain"

	"github.com/google/uuid"
)

type InterviewStore struct {
	mu    sync.Mutex
	items map[string]*domain.ScheduledInterview
	now   func() time.Time
}

func NewInterviewStore() *InterviewStore {
	return &InterviewStore{
		items: make(map[string]*domain.ScheduledInterview),
		now:   time.Now,
	}
}

// SetClock overrides the store clock.
func (s *InterviewStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *InterviewStore) Reserve(ctx context.Context, interview *domain.ScheduledInterview) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ignore := ""
	if interview.RescheduledFrom != nil {
		ignore = *interview.RescheduledFrom
		if err := s.checkReplaceable(ignore); err != nil {
			return err
		}
	}

	for _, it := range s.sorted() {
		if it.ID == ignore || !it.Status.IsActive() {
			continue
		}
		if it.IdempotencyKey == interview.IdempotencyKey {
			return &domain.ReservationError{Err: domain.ErrDuplicateRequest, Existing: clone(it)}
		}
	}
	for _, it := range s.sorted() {
		if it.ID == ignore || !it.Status.IsActive() {
			continue
		}
		sharesParty := it.InvolvesOwner(interview.CandidateID) || it.InvolvesOwner(interview.RecruiterID)
		if sharesParty && it.Slot.Overlaps(interview.Slot) {
			return &domain.ReservationError{Err: domain.ErrSlotConflict, Existing: clone(it)}
		}
	}

	if interview.ID == "" {
		interview.ID = uuid.NewString()
	}
	now := s.now()
	interview.CreatedAt = now
	interview.UpdatedAt = now
	if interview.Status == "" {
		interview.Status = domain.InterviewRequested
	}
	s.items[interview.ID] = clone(interview)
	return nil
}

func (s *InterviewStore) GetByID(ctx context.Context, id string) (*domain.ScheduledInterview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(it), nil
}

func (s *InterviewStore) ListActiveByOwner(ctx context.Context, ownerID string) ([]domain.ScheduledInterview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.ScheduledInterview{}
	for _, it := range s.sorted() {
		if it.Status.IsActive() && it.InvolvesOwner(ownerID) {
			out = append(out, *clone(it))
		}
	}
	return out, nil
}

func (s *InterviewStore) Transition(ctx context.Context, id string, from []domain.InterviewStatus, to domain.InterviewStatus, externalRef *string) (*domain.ScheduledInterview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !slices.Contains(from, it.Status) {
		return nil, domain.ErrInvalidTransition
	}
	it.Status = to
	if externalRef != nil {
		ref := *externalRef
		it.ExternalBookingRef = &ref
	}
	it.UpdatedAt = s.now()
	return clone(it), nil
}

func (s *InterviewStore) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.ScheduledInterview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.ScheduledInterview{}
	for _, it := range s.sorted() {
		pending := it.Status == domain.InterviewRequested || it.Status == domain.InterviewPendingExternal
		if pending && it.UpdatedAt.Before(cutoff) {
			out = append(out, *clone(it))
		}
	}
	return out, nil
}

// Count returns the number of stored interviews in any state.
func (s *InterviewStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// checkReplaceable claims the source of a reschedule: it must be confirmed
// and have no active replacement. Callers hold mu.
func (s *InterviewStore) checkReplaceable(sourceID string) error {
	source, ok := s.items[sourceID]
	if !ok {
		return domain.ErrNotFound
	}
	if source.Status != domain.InterviewConfirmed {
		return &domain.ReservationError{Err: domain.ErrAlreadyRescheduled, Existing: clone(source)}
	}
	for _, it := range s.sorted() {
		if it.RescheduledFrom != nil && *it.RescheduledFrom == sourceID && it.Status.IsActive() {
			return &domain.ReservationError{Err: domain.ErrAlreadyRescheduled, Existing: clone(it)}
		}
	}
	return nil
}

// sorted returns items ordered by creation; callers hold mu.
func (s *InterviewStore) sorted() []*domain.ScheduledInterview {
	out := make([]*domain.ScheduledInterview, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func clone(it *domain.ScheduledInterview) *domain.ScheduledInterview {
	c := *it
	if it.ExternalBookingRef != nil {
		ref := *it.ExternalBookingRef
		c.ExternalBookingRef = &ref
	}
	if it.RescheduledFrom != nil {
		from := *it.RescheduledFrom
		c.RescheduledFrom = &from
	}
	return &c
}
