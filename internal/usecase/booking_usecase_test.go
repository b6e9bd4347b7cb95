package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/internal/repository/memory"
	"go-recruitment-scheduler/internal/usecase"
	"go-recruitment-scheduler/pkg/apperror"
	"go-recruitment-scheduler/pkg/logger"
	"go-recruitment-scheduler/pkg/retry"
	"go-recruitment-scheduler/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scriptedProvider answers CreateBooking/CancelBooking from queued errors;
// an empty queue means success. moveBy shifts the slot it confirms.
type scriptedProvider struct {
	mu         sync.Mutex
	moveBy     time.Duration
	createErrs []error
	cancelErrs []error
	creates    int
	cancelled  []string
	started    chan struct{}
	release    chan struct{}
}

func (p *scriptedProvider) CreateBooking(ctx context.Context, s domain.TimeSlot, attendees []domain.Attendee, metadata map[string]string) (*domain.ExternalBooking, error) {
	p.mu.Lock()
	p.creates++
	n := p.creates
	var err error
	if len(p.createErrs) > 0 {
		err, p.createErrs = p.createErrs[0], p.createErrs[1:]
	}
	started, release, moveBy := p.started, p.release, p.moveBy
	p.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	s.Start, s.End = s.Start.Add(moveBy), s.End.Add(moveBy)
	return &domain.ExternalBooking{ExternalRef: fmt.Sprintf("ext-%d", n), ConfirmedSlot: s}, nil
}

func (p *scriptedProvider) CancelBooking(ctx context.Context, externalRef string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.cancelErrs) > 0 {
		var err error
		err, p.cancelErrs = p.cancelErrs[0], p.cancelErrs[1:]
		if err != nil {
			return err
		}
	}
	p.cancelled = append(p.cancelled, externalRef)
	return nil
}

func (p *scriptedProvider) stats() (int, []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creates, append([]string(nil), p.cancelled...)
}

func unavailable() error {
	return &domain.ProviderError{Retryable: true, StatusCode: http.StatusServiceUnavailable, Err: errors.New("unavailable")}
}

func rejected() error {
	return &domain.ProviderError{Retryable: false, StatusCode: http.StatusBadRequest, Err: errors.New("rejected")}
}

func testBookingConfig() usecase.BookingConfig {
	cfg := usecase.DefaultBookingConfig()
	cfg.Retry = retry.Policy{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		AttemptTimeout:  time.Second,
	}
	cfg.ExternalTimeout = 5 * time.Second
	return cfg
}

func newBooking(store *memory.InterviewStore, provider domain.BookingProvider, availability domain.AvailabilityUsecase, opts ...usecase.BookingOption) usecase.BookingOrchestrator {
	return usecase.NewBookingUsecase(store, availability, provider, validation.New(), testBookingConfig(), logger.Nop(), opts...)
}

func scheduleRequest(candidateID string, slots ...domain.TimeSlot) domain.ScheduleRequest {
	return domain.ScheduleRequest{
		JobID:           42,
		CandidateID:     candidateID,
		RecruiterID:     "rec-1",
		PreferredSlots:  slots,
		DurationMinutes: 60,
	}
}

func TestScheduleInterview(t *testing.T) {
	ctx := context.Background()

	t.Run("Confirms the first free slot", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, nil)

		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))

		require.NoError(t, err)
		assert.True(t, result.Success)
		require.NotNil(t, result.Interview)
		assert.Equal(t, domain.InterviewConfirmed, result.Interview.Status)
		require.NotNil(t, result.Interview.ExternalBookingRef)
		assert.Equal(t, "ext-1", *result.Interview.ExternalBookingRef)
		assert.Empty(t, result.Conflicts)
		assert.Equal(t, 1, store.Count())
	})

	t.Run("Skips a slot the recruiter already holds", func(t *testing.T) {
		store := memory.NewInterviewStore()
		existing := confirmedInterview(t, store, "cand-other", "rec-1", slot(10, 0, 60))
		uc := newBooking(store, &scriptedProvider{}, nil)

		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 30, 60), slot(11, 0, 60)))

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, at(11, 0), result.Interview.Slot.Start)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, existing.ID, result.Conflicts[0].ExistingInterviewID)
		assert.Equal(t, "rec-1", result.Conflicts[0].OwnerID)
		assert.Equal(t, domain.ConflictExistingInterview, result.Conflicts[0].Reason)
	})

	t.Run("Half-open boundary is not a conflict", func(t *testing.T) {
		store := memory.NewInterviewStore()
		confirmedInterview(t, store, "cand-other", "rec-1", slot(10, 0, 60))
		uc := newBooking(store, &scriptedProvider{}, nil)

		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(11, 0, 60)))

		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("All slots taken returns conflicts and suggestions", func(t *testing.T) {
		store := memory.NewInterviewStore()
		confirmedInterview(t, store, "cand-1", "rec-2", slot(10, 0, 60))
		confirmedInterview(t, store, "cand-other", "rec-1", slot(14, 0, 60))

		availability := new(MockAvailabilityUsecase)
		mutual := []domain.TimeSlot{
			slot(8, 0, 60), // before now
			slot(10, 0, 60),
			slot(15, 0, 60),
			slot(15, 30, 60),
			slot(16, 0, 60),
			slot(16, 30, 60),
			slot(17, 0, 60),
			slot(17, 30, 60),
		}
		availability.On("GetMutualSlots", mock.Anything, "cand-1", "rec-1", time.Hour, day, day.Add(7*24*time.Hour)).
			Return(mutual, nil)
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, availability, usecase.WithClock(func() time.Time { return at(9, 0) }))

		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60), slot(14, 0, 60)))

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Nil(t, result.Interview)
		require.Len(t, result.Conflicts, 2)
		assert.Equal(t, "cand-1", result.Conflicts[0].OwnerID)
		assert.Equal(t, "rec-1", result.Conflicts[1].OwnerID)

		require.Len(t, result.SuggestedTimes, 5)
		assert.Equal(t, at(15, 0), result.SuggestedTimes[0].Start)
		assert.Equal(t, at(17, 0), result.SuggestedTimes[4].Start)

		creates, _ := provider.stats()
		assert.Zero(t, creates)
		assert.Equal(t, 2, store.Count())
		availability.AssertExpectations(t)
	})

	t.Run("Suggestion failure keeps the conflict result", func(t *testing.T) {
		store := memory.NewInterviewStore()
		confirmedInterview(t, store, "cand-other", "rec-1", slot(10, 0, 60))
		availability := new(MockAvailabilityUsecase)
		availability.On("GetMutualSlots", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.NotFound("Owner not found"))
		uc := newBooking(store, &scriptedProvider{}, availability)

		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Len(t, result.Conflicts, 1)
		assert.Empty(t, result.SuggestedTimes)
	})

	t.Run("Rejects invalid requests without creating state", func(t *testing.T) {
		store := memory.NewInterviewStore()
		uc := newBooking(store, &scriptedProvider{}, nil)

		_, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1"))
		assertKind(t, err, apperror.KindValidation)

		_, err = uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 30)))
		assertKind(t, err, apperror.KindValidation)

		reversed := domain.TimeSlot{Start: at(11, 0), End: at(10, 0)}
		_, err = uc.ScheduleInterview(ctx, scheduleRequest("cand-1", reversed))
		assertKind(t, err, apperror.KindValidation)

		assert.Zero(t, store.Count())
	})

	t.Run("Identical request is rejected as a conflict", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, nil)
		req := scheduleRequest("cand-1", slot(10, 0, 60))

		first, err := uc.ScheduleInterview(ctx, req)
		require.NoError(t, err)

		_, err = uc.ScheduleInterview(ctx, req)
		assertKind(t, err, apperror.KindConflict)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		details := appErr.Details.(map[string]interface{})
		assert.Equal(t, first.Interview.ID, details["existing_interview_id"])

		creates, _ := provider.stats()
		assert.Equal(t, 1, creates)
		assert.Equal(t, 1, store.Count())
	})

	t.Run("Concurrent requests for one slot book it once", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, nil)

		const callers = 12
		var wg sync.WaitGroup
		var mu sync.Mutex
		successes := 0
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				result, err := uc.ScheduleInterview(ctx, scheduleRequest(fmt.Sprintf("cand-%d", i), slot(10, 0, 60)))
				if err == nil && result.Success {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, store.Count())
		creates, _ := provider.stats()
		assert.Equal(t, 1, creates)
	})

	t.Run("Retries retryable provider failures", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{createErrs: []error{unavailable(), unavailable()}}
		uc := newBooking(store, provider, nil)

		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))

		require.NoError(t, err)
		assert.Equal(t, domain.InterviewConfirmed, result.Interview.Status)
		creates, _ := provider.stats()
		assert.Equal(t, 3, creates)
	})

	t.Run("Exhausted retries fail and release the slot", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{createErrs: []error{unavailable(), unavailable(), unavailable()}}
		uc := newBooking(store, provider, nil)
		req := scheduleRequest("cand-1", slot(10, 0, 60))

		_, err := uc.ScheduleInterview(ctx, req)

		assertKind(t, err, apperror.KindExternalService)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.True(t, appErr.Retryable)
		creates, _ := provider.stats()
		assert.Equal(t, 3, creates)

		active, err := store.ListActiveByOwner(ctx, "rec-1")
		require.NoError(t, err)
		assert.Empty(t, active)

		result, err := uc.ScheduleInterview(ctx, req)
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("Non-retryable failure is not retried", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{createErrs: []error{rejected()}}
		uc := newBooking(store, provider, nil)

		_, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))

		assertKind(t, err, apperror.KindExternalService)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.False(t, appErr.Retryable)
		details := appErr.Details.(map[string]interface{})
		interview, getErr := store.GetByID(ctx, details["interview_id"].(string))
		require.NoError(t, getErr)
		assert.Equal(t, domain.InterviewFailed, interview.Status)
		creates, _ := provider.stats()
		assert.Equal(t, 1, creates)
	})
}

func TestScheduleInterviewAbandonedCaller(t *testing.T) {
	run := func(t *testing.T, provider *scriptedProvider) *memory.InterviewStore {
		t.Helper()
		store := memory.NewInterviewStore()
		provider.started = make(chan struct{}, 1)
		provider.release = make(chan struct{})
		uc := newBooking(store, provider, nil)

		callerCtx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			_, err := uc.ScheduleInterview(callerCtx, scheduleRequest("cand-1", slot(10, 0, 60)))
			errCh <- err
		}()

		<-provider.started
		cancel()
		assert.ErrorIs(t, <-errCh, context.Canceled)
		close(provider.release)

		drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer drainCancel()
		require.NoError(t, uc.Drain(drainCtx))
		return store
	}

	t.Run("Late booking is cancelled and the slot released", func(t *testing.T) {
		provider := &scriptedProvider{}
		store := run(t, provider)

		_, cancelled := provider.stats()
		assert.Equal(t, []string{"ext-1"}, cancelled)
		active, err := store.ListActiveByOwner(context.Background(), "rec-1")
		require.NoError(t, err)
		assert.Empty(t, active)
		assert.Equal(t, 1, store.Count())
	})

	t.Run("Late booking is kept when it cannot be cancelled", func(t *testing.T) {
		provider := &scriptedProvider{cancelErrs: []error{rejected()}}
		store := run(t, provider)

		active, err := store.ListActiveByOwner(context.Background(), "rec-1")
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, domain.InterviewConfirmed, active[0].Status)
		assert.Equal(t, "ext-1", *active[0].ExternalBookingRef)
	})
}

func TestScheduleInterviewReservationExpiredDuringCall(t *testing.T) {
	store := memory.NewInterviewStore()
	provider := &scriptedProvider{started: make(chan struct{}, 1), release: make(chan struct{})}
	uc := newBooking(store, provider, nil)
	sweeper := newBooking(store, provider, nil, usecase.WithClock(func() time.Time { return time.Now().Add(time.Hour) }))

	errCh := make(chan error, 1)
	go func() {
		_, err := uc.ScheduleInterview(context.Background(), scheduleRequest("cand-1", slot(10, 0, 60)))
		errCh <- err
	}()

	<-provider.started
	expired, err := sweeper.ExpireStalePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	close(provider.release)

	assertKind(t, <-errCh, apperror.KindExternalService)
	_, cancelled := provider.stats()
	assert.Equal(t, []string{"ext-1"}, cancelled)
}

func TestScheduleInterviewProviderMovedSlot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInterviewStore()
	provider := &scriptedProvider{moveBy: 30 * time.Minute}
	uc := newBooking(store, provider, nil)

	_, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))

	assertKind(t, err, apperror.KindExternalService)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.False(t, appErr.Retryable)

	active, err := store.ListActiveByOwner(ctx, "cand-1")
	require.NoError(t, err)
	assert.Empty(t, active)
	_, cancelled := provider.stats()
	assert.Equal(t, []string{"ext-1"}, cancelled)
}

func TestCancelInterview(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancels external booking then releases the slot", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, nil)
		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)

		require.NoError(t, uc.CancelInterview(ctx, result.Interview.ID))

		got, err := uc.GetInterview(ctx, result.Interview.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewCancelled, got.Status)
		_, cancelled := provider.stats()
		assert.Equal(t, []string{"ext-1"}, cancelled)

		assertKind(t, uc.CancelInterview(ctx, result.Interview.ID), apperror.KindConflict)
	})

	t.Run("Provider failure keeps the interview confirmed", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{cancelErrs: []error{rejected()}}
		uc := newBooking(store, provider, nil)
		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)

		assertKind(t, uc.CancelInterview(ctx, result.Interview.ID), apperror.KindExternalService)

		got, err := uc.GetInterview(ctx, result.Interview.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewConfirmed, got.Status)
	})

	t.Run("Unknown interview is not found", func(t *testing.T) {
		uc := newBooking(memory.NewInterviewStore(), &scriptedProvider{}, nil)
		assertKind(t, uc.CancelInterview(ctx, "missing"), apperror.KindNotFound)
	})

	t.Run("Concurrent cancels release the external booking once", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, nil)
		result, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 6)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = uc.CancelInterview(ctx, result.Interview.ID)
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assertKind(t, err, apperror.KindConflict)
		}
		assert.Equal(t, 1, succeeded)
		_, cancelled := provider.stats()
		assert.Equal(t, []string{"ext-1"}, cancelled)
	})
}

func TestRescheduleInterview(t *testing.T) {
	ctx := context.Background()

	t.Run("Moves into a slot overlapping the old one", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, nil)
		original, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)

		result, err := uc.RescheduleInterview(ctx, original.Interview.ID, []domain.TimeSlot{slot(10, 30, 60)})

		require.NoError(t, err)
		require.True(t, result.Success)
		assert.Equal(t, at(10, 30), result.Interview.Slot.Start)
		require.NotNil(t, result.Interview.RescheduledFrom)
		assert.Equal(t, original.Interview.ID, *result.Interview.RescheduledFrom)

		old, err := uc.GetInterview(ctx, original.Interview.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewRescheduled, old.Status)
		_, cancelled := provider.stats()
		assert.Equal(t, []string{"ext-1"}, cancelled)

		active, err := store.ListActiveByOwner(ctx, "cand-1")
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, result.Interview.ID, active[0].ID)
	})

	t.Run("Conflicting new slot leaves the old interview in place", func(t *testing.T) {
		store := memory.NewInterviewStore()
		uc := newBooking(store, &scriptedProvider{}, nil)
		original, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)
		confirmedInterview(t, store, "cand-other", "rec-1", slot(14, 0, 60))

		result, err := uc.RescheduleInterview(ctx, original.Interview.ID, []domain.TimeSlot{slot(14, 0, 60)})

		require.NoError(t, err)
		assert.False(t, result.Success)
		old, err := uc.GetInterview(ctx, original.Interview.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InterviewConfirmed, old.Status)
	})

	t.Run("Only confirmed interviews can be rescheduled", func(t *testing.T) {
		store := memory.NewInterviewStore()
		uc := newBooking(store, &scriptedProvider{}, nil)
		original, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)
		require.NoError(t, uc.CancelInterview(ctx, original.Interview.ID))

		_, err = uc.RescheduleInterview(ctx, original.Interview.ID, []domain.TimeSlot{slot(12, 0, 60)})
		assertKind(t, err, apperror.KindConflict)
	})

	t.Run("Concurrent reschedules book only one replacement", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, nil)
		original, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)
		provider.started = make(chan struct{}, 2)
		provider.release = make(chan struct{})

		type outcome struct {
			result *domain.BookingResult
			err    error
		}
		outcomes := make(chan outcome, 2)
		for _, s := range []domain.TimeSlot{slot(12, 0, 60), slot(14, 0, 60)} {
			go func() {
				result, err := uc.RescheduleInterview(ctx, original.Interview.ID, []domain.TimeSlot{s})
				outcomes <- outcome{result: result, err: err}
			}()
		}

		<-provider.started
		close(provider.release)

		wins := 0
		for range 2 {
			o := <-outcomes
			if o.err == nil {
				require.True(t, o.result.Success)
				wins++
				continue
			}
			assertKind(t, o.err, apperror.KindConflict)
		}
		assert.Equal(t, 1, wins)

		active, err := store.ListActiveByOwner(ctx, "cand-1")
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, domain.InterviewConfirmed, active[0].Status)
		creates, cancelled := provider.stats()
		assert.Equal(t, 2, creates)
		assert.Equal(t, []string{"ext-1"}, cancelled)
	})

	t.Run("Source cancelled during the external call undoes the replacement", func(t *testing.T) {
		store := memory.NewInterviewStore()
		provider := &scriptedProvider{}
		uc := newBooking(store, provider, nil)
		original, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)
		provider.started = make(chan struct{}, 1)
		provider.release = make(chan struct{})

		errCh := make(chan error, 1)
		go func() {
			_, err := uc.RescheduleInterview(ctx, original.Interview.ID, []domain.TimeSlot{slot(12, 0, 60)})
			errCh <- err
		}()

		<-provider.started
		require.NoError(t, uc.CancelInterview(ctx, original.Interview.ID))
		close(provider.release)

		assertKind(t, <-errCh, apperror.KindConflict)
		active, err := store.ListActiveByOwner(ctx, "cand-1")
		require.NoError(t, err)
		assert.Empty(t, active)
		_, cancelled := provider.stats()
		assert.Equal(t, []string{"ext-1", "ext-2"}, cancelled)
	})

	t.Run("New slot must keep the duration", func(t *testing.T) {
		store := memory.NewInterviewStore()
		uc := newBooking(store, &scriptedProvider{}, nil)
		original, err := uc.ScheduleInterview(ctx, scheduleRequest("cand-1", slot(10, 0, 60)))
		require.NoError(t, err)

		_, err = uc.RescheduleInterview(ctx, original.Interview.ID, []domain.TimeSlot{slot(12, 0, 90)})
		assertKind(t, err, apperror.KindValidation)
	})
}

func TestExpireStalePending(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store := memory.NewInterviewStore()
	store.SetClock(func() time.Time { return t0 })

	stale := &domain.ScheduledInterview{
		JobID: 1, CandidateID: "cand-1", RecruiterID: "rec-1", Slot: slot(10, 0, 60),
		IdempotencyKey: "stale",
	}
	require.NoError(t, store.Reserve(ctx, stale))
	confirmedInterview(t, store, "cand-2", "rec-2", slot(10, 0, 60))

	uc := newBooking(store, &scriptedProvider{}, nil, usecase.WithClock(func() time.Time { return t0.Add(11 * time.Minute) }))

	expired, err := uc.ExpireStalePending(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	got, err := store.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InterviewFailed, got.Status)

	again, err := uc.ExpireStalePending(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}
