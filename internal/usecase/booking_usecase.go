package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/internal/metrics"
	"go-recruitment-scheduler/internal/scheduling"
	"go-recruitment-scheduler/pkg/apperror"
	"go-recruitment-scheduler/pkg/retry"
	"go-recruitment-scheduler/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type BookingConfig struct {
	Retry retry.Policy
	// ExternalTimeout bounds one external booking call including retries.
	ExternalTimeout    time.Duration
	PendingMaxLifetime time.Duration
	SuggestionLimit    int
	SuggestionHorizon  time.Duration
}

func DefaultBookingConfig() BookingConfig {
	return BookingConfig{
		Retry:              retry.DefaultPolicy(),
		ExternalTimeout:    30 * time.Second,
		PendingMaxLifetime: 10 * time.Minute,
		SuggestionLimit:    5,
		SuggestionHorizon:  7 * 24 * time.Hour,
	}
}

// BookingOrchestrator is the booking usecase plus its lifecycle hook.
type BookingOrchestrator interface {
	domain.BookingUsecase
	// Drain blocks until every detached external call has settled or ctx is done.
	Drain(ctx context.Context) error
}

type BookingOption func(*bookingUsecase)

// WithClock overrides the clock used for pending expiry and suggestion ranges.
func WithClock(now func() time.Time) BookingOption {
	return func(uc *bookingUsecase) {
		uc.now = now
	}
}

type bookingUsecase struct {
	interviewRepo  domain.InterviewRepository
	availabilityUC domain.AvailabilityUsecase
	provider       domain.BookingProvider
	validate       *validator.Validate
	cfg            BookingConfig
	logger         *slog.Logger
	now            func() time.Time
	inflight       sync.WaitGroup
}

// NewBookingUsecase creates the booking orchestrator
func NewBookingUsecase(
	interviewRepo domain.InterviewRepository,
	availabilityUC domain.AvailabilityUsecase,
	provider domain.BookingProvider,
	validate *validator.Validate,
	cfg BookingConfig,
	logger *slog.Logger,
	opts ...BookingOption,
) BookingOrchestrator {
	uc := &bookingUsecase{
		interviewRepo:  interviewRepo,
		availabilityUC: availabilityUC,
		provider:       provider,
		validate:       validate,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type externalOutcome struct {
	booking *domain.ExternalBooking
	err     error
}

// ScheduleInterview reserves the first conflict-free preferred slot and books
// it with the external provider.
func (uc *bookingUsecase) ScheduleInterview(ctx context.Context, req domain.ScheduleRequest) (*domain.BookingResult, error) {
	if err := uc.validateRequest(req); err != nil {
		metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}
	return uc.schedule(ctx, req, nil)
}

func (uc *bookingUsecase) GetInterview(ctx context.Context, id string) (*domain.ScheduledInterview, error) {
	it, err := uc.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}
	return it, nil
}

// CancelInterview claims the interview as cancelled, then cancels the external
// booking. If the provider refuses, the interview is confirmed again.
func (uc *bookingUsecase) CancelInterview(ctx context.Context, id string) error {
	it, err := uc.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return repoError(err)
	}
	if !it.Status.CanTransitionTo(domain.InterviewCancelled) {
		return apperror.Conflict(
			fmt.Sprintf("Interview in status %s cannot be cancelled", it.Status),
			map[string]interface{}{"interview_id": it.ID, "status": it.Status},
		)
	}

	cancelled, err := uc.transition(ctx, it.ID, []domain.InterviewStatus{domain.InterviewConfirmed}, domain.InterviewCancelled, nil)
	if err != nil {
		return repoError(err)
	}
	if cancelled.ExternalBookingRef == nil {
		return nil
	}

	ref := *cancelled.ExternalBookingRef
	if err := uc.cancelExternal(ctx, it.ID, ref); err != nil {
		// still booked with the provider
		if _, restoreErr := uc.transition(context.WithoutCancel(ctx), it.ID,
			[]domain.InterviewStatus{domain.InterviewCancelled}, domain.InterviewConfirmed, nil); restoreErr != nil {
			uc.logger.Error("failed to restore interview after external cancel failed",
				"interview_id", it.ID, "external_ref", ref, "error", restoreErr)
		}
		return apperror.External(domain.IsRetryableProviderError(err), err)
	}
	return nil
}

// RescheduleInterview books one of the new slots for the same job, candidate
// and recruiter, then retires the old interview. The old slot is not counted
// as a conflict for the replacement.
func (uc *bookingUsecase) RescheduleInterview(ctx context.Context, id string, preferredSlots []domain.TimeSlot) (*domain.BookingResult, error) {
	old, err := uc.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}
	if !old.Status.CanTransitionTo(domain.InterviewRescheduled) {
		return nil, apperror.Conflict(
			fmt.Sprintf("Interview in status %s cannot be rescheduled", old.Status),
			map[string]interface{}{"interview_id": old.ID, "status": old.Status},
		)
	}

	req := domain.ScheduleRequest{
		JobID:           old.JobID,
		CandidateID:     old.CandidateID,
		RecruiterID:     old.RecruiterID,
		PreferredSlots:  preferredSlots,
		DurationMinutes: int(old.Slot.Duration() / time.Minute),
	}
	if err := uc.validateRequest(req); err != nil {
		metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	result, err := uc.schedule(ctx, req, old)
	if err != nil || !result.Success {
		return result, err
	}

	settle := context.WithoutCancel(ctx)
	if _, err := uc.transition(settle, old.ID, []domain.InterviewStatus{domain.InterviewConfirmed}, domain.InterviewRescheduled, nil); err != nil {
		uc.logger.Error("failed to retire rescheduled interview, undoing replacement",
			"interview_id", old.ID, "replacement_id", result.Interview.ID, "error", err)
		uc.undoReplacement(settle, result.Interview)
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, apperror.Conflict("Interview changed while it was being rescheduled",
				map[string]interface{}{"interview_id": old.ID, "replacement_id": result.Interview.ID})
		}
		return nil, apperror.Internal(err)
	}
	if old.ExternalBookingRef != nil {
		if err := uc.cancelExternal(settle, old.ID, *old.ExternalBookingRef); err != nil {
			uc.logger.Error("failed to cancel external booking of rescheduled interview",
				"interview_id", old.ID, "external_ref", *old.ExternalBookingRef, "error", err)
		}
	}
	return result, nil
}

// ExpireStalePending fails every requested or pending_external interview that
// has not moved for longer than the pending lifetime.
func (uc *bookingUsecase) ExpireStalePending(ctx context.Context) (int, error) {
	cutoff := uc.now().Add(-uc.cfg.PendingMaxLifetime)
	stale, err := uc.interviewRepo.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, apperror.Internal(err)
	}

	expired := 0
	for _, it := range stale {
		_, err := uc.transition(ctx, it.ID,
			[]domain.InterviewStatus{domain.InterviewRequested, domain.InterviewPendingExternal},
			domain.InterviewFailed, nil)
		if errors.Is(err, domain.ErrInvalidTransition) {
			// settled while we were looking
			continue
		}
		if err != nil {
			return expired, apperror.Internal(err)
		}
		expired++
		metrics.StaleExpired.Inc()
		uc.logger.Warn("expired stale interview", "interview_id", it.ID, "status", it.Status, "updated_at", it.UpdatedAt)
	}
	return expired, nil
}

func (uc *bookingUsecase) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *bookingUsecase) validateRequest(req domain.ScheduleRequest) error {
	if err := uc.validate.Struct(req); err != nil {
		return apperror.Validation("Invalid schedule request", validation.FormatValidationErrors(err))
	}

	duration := req.Duration()
	var mismatched []string
	for i, slot := range req.PreferredSlots {
		if slot.Duration() != duration {
			mismatched = append(mismatched,
				fmt.Sprintf("Preferred slot %d lasts %s, expected %s", i+1, slot.Duration(), duration))
		}
	}
	if len(mismatched) > 0 {
		return apperror.Validation("Preferred slot duration does not match the requested duration", mismatched)
	}
	return nil
}

// schedule runs conflict detection against a snapshot of both parties'
// interviews and reserves the first free slot. replaces is the interview
// being rescheduled, if any.
func (uc *bookingUsecase) schedule(ctx context.Context, req domain.ScheduleRequest, replaces *domain.ScheduledInterview) (*domain.BookingResult, error) {
	candidateActive, err := uc.interviewRepo.ListActiveByOwner(ctx, req.CandidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	recruiterActive, err := uc.interviewRepo.ListActiveByOwner(ctx, req.RecruiterID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var replacedID string
	var rescheduledFrom *string
	if replaces != nil {
		replacedID = replaces.ID
		rescheduledFrom = &replaces.ID
	}
	candidateActive = scheduling.Exclude(candidateActive, replacedID)
	recruiterActive = scheduling.Exclude(recruiterActive, replacedID)
	parties := []scheduling.Party{
		{OwnerID: req.CandidateID, Existing: candidateActive},
		{OwnerID: req.RecruiterID, Existing: recruiterActive},
	}

	var conflicts []domain.ConflictReport
	var reserved *domain.ScheduledInterview
	for _, slot := range req.PreferredSlots {
		key := domain.IdempotencyKey(req.JobID, req.CandidateID, req.RecruiterID, slot)
		if dup, ok := lo.Find(candidateActive, func(it domain.ScheduledInterview) bool {
			return it.IdempotencyKey == key
		}); ok {
			metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return nil, duplicateError(&dup)
		}

		if report := scheduling.CheckParties(slot, parties...); report != nil {
			conflicts = append(conflicts, *report)
			continue
		}

		interview := &domain.ScheduledInterview{
			JobID:           req.JobID,
			CandidateID:     req.CandidateID,
			RecruiterID:     req.RecruiterID,
			Slot:            slot,
			Status:          domain.InterviewRequested,
			IdempotencyKey:  key,
			RescheduledFrom: rescheduledFrom,
		}
		err := uc.interviewRepo.Reserve(ctx, interview)
		if err == nil {
			reserved = interview
			break
		}

		var resErr *domain.ReservationError
		switch {
		case errors.As(err, &resErr) && errors.Is(err, domain.ErrDuplicateRequest):
			metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return nil, duplicateError(resErr.Existing)
		case errors.As(err, &resErr) && errors.Is(err, domain.ErrSlotConflict):
			conflicts = append(conflicts, raceConflict(slot, req, resErr.Existing))
		case errors.Is(err, domain.ErrAlreadyRescheduled):
			metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			details := map[string]interface{}{"interview_id": replacedID}
			if errors.As(err, &resErr) && resErr.Existing != nil {
				details["existing_interview_id"] = resErr.Existing.ID
				details["status"] = resErr.Existing.Status
			}
			return nil, apperror.Conflict("Interview was already rescheduled or changed", details)
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Interview not found")
		default:
			return nil, apperror.Internal(err)
		}
	}

	if reserved == nil {
		metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeConflict).Inc()
		return &domain.BookingResult{
			Success:        false,
			Conflicts:      conflicts,
			SuggestedTimes: uc.suggest(ctx, req),
		}, nil
	}

	uc.logger.Info("interview reserved",
		"interview_id", reserved.ID, "candidate_id", reserved.CandidateID,
		"recruiter_id", reserved.RecruiterID, "start", reserved.Slot.Start)

	confirmed, err := uc.book(ctx, reserved)
	if err != nil {
		return nil, err
	}
	return &domain.BookingResult{
		Success:   true,
		Interview: confirmed,
		Conflicts: conflicts,
	}, nil
}

// book moves a reserved interview through the external call. The call runs
// on a context detached from the caller so an abandoned request still settles.
func (uc *bookingUsecase) book(ctx context.Context, it *domain.ScheduledInterview) (*domain.ScheduledInterview, error) {
	pending, err := uc.transition(ctx, it.ID,
		[]domain.InterviewStatus{domain.InterviewRequested}, domain.InterviewPendingExternal, nil)
	if err != nil {
		return nil, repoError(err)
	}

	settle := context.WithoutCancel(ctx)
	outcomes := make(chan externalOutcome)

	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()

		callCtx, cancel := context.WithTimeout(settle, uc.cfg.ExternalTimeout)
		booking, err := uc.createExternal(callCtx, pending)
		cancel()

		select {
		case outcomes <- externalOutcome{booking: booking, err: err}:
		case <-ctx.Done():
			uc.reconcileAbandoned(settle, pending, booking, err)
		}
	}()

	var outcome externalOutcome
	select {
	case outcome = <-outcomes:
	case <-ctx.Done():
		uc.logger.Warn("caller left while external booking in flight", "interview_id", pending.ID)
		return nil, ctx.Err()
	}

	if outcome.err != nil {
		return nil, uc.failBooking(settle, pending, outcome.err)
	}
	if moved := outcome.booking.ConfirmedSlot; !moved.Start.IsZero() && !moved.SameInstant(pending.Slot) {
		return nil, uc.rejectMovedBooking(settle, pending, outcome.booking)
	}
	return uc.confirmBooking(settle, pending, outcome.booking)
}

func (uc *bookingUsecase) confirmBooking(ctx context.Context, it *domain.ScheduledInterview, booking *domain.ExternalBooking) (*domain.ScheduledInterview, error) {
	ref := booking.ExternalRef
	confirmed, err := uc.transition(ctx, it.ID,
		[]domain.InterviewStatus{domain.InterviewPendingExternal}, domain.InterviewConfirmed, &ref)
	if err == nil {
		metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeConfirmed).Inc()
		return confirmed, nil
	}

	// The reservation expired while the provider was working; give the
	// external booking back so nothing is left orphaned.
	uc.logger.Error("reservation lost before confirmation",
		"interview_id", it.ID, "external_ref", ref, "error", err)
	if cancelErr := uc.cancelExternal(ctx, it.ID, ref); cancelErr != nil {
		uc.logger.Error("failed to release external booking",
			"interview_id", it.ID, "external_ref", ref, "error", cancelErr)
	}
	metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeFailed).Inc()
	return nil, apperror.External(true, fmt.Errorf("reservation %s expired before confirmation: %w", it.ID, err))
}

// rejectMovedBooking gives back a booking the provider placed in a different
// slot than the one reserved locally.
func (uc *bookingUsecase) rejectMovedBooking(ctx context.Context, it *domain.ScheduledInterview, booking *domain.ExternalBooking) error {
	got := booking.ConfirmedSlot
	uc.logger.Warn("provider confirmed a different slot",
		"interview_id", it.ID, "external_ref", booking.ExternalRef,
		"reserved_start", it.Slot.Start, "confirmed_start", got.Start, "confirmed_end", got.End)
	if err := uc.cancelExternal(ctx, it.ID, booking.ExternalRef); err != nil {
		uc.logger.Error("failed to release moved external booking",
			"interview_id", it.ID, "external_ref", booking.ExternalRef, "error", err)
	}
	return uc.failBooking(ctx, it, fmt.Errorf("provider confirmed %s-%s instead of %s-%s",
		got.Start.Format(time.RFC3339), got.End.Format(time.RFC3339),
		it.Slot.Start.Format(time.RFC3339), it.Slot.End.Format(time.RFC3339)))
}

func (uc *bookingUsecase) failBooking(ctx context.Context, it *domain.ScheduledInterview, cause error) error {
	if _, err := uc.transition(ctx, it.ID,
		[]domain.InterviewStatus{domain.InterviewPendingExternal}, domain.InterviewFailed, nil); err != nil {
		uc.logger.Error("failed to release reservation", "interview_id", it.ID, "error", err)
	}
	metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeFailed).Inc()

	appErr := apperror.External(domain.IsRetryableProviderError(cause), cause)
	appErr.Details = map[string]interface{}{
		"interview_id": it.ID,
		"conflicts": []domain.ConflictReport{{
			ConflictingSlot: it.Slot,
			Reason:          domain.ConflictExternalBookingFailed,
		}},
	}
	return appErr
}

// reconcileAbandoned settles an interview whose caller stopped waiting. A
// booking made after the caller left is cancelled and the slot released; if
// the cancel fails the booking is kept and confirmed instead.
func (uc *bookingUsecase) reconcileAbandoned(ctx context.Context, it *domain.ScheduledInterview, booking *domain.ExternalBooking, callErr error) {
	metrics.BookingOutcomes.WithLabelValues(metrics.OutcomeAbandoned).Inc()
	pending := []domain.InterviewStatus{domain.InterviewPendingExternal}

	if callErr != nil {
		if _, err := uc.transition(ctx, it.ID, pending, domain.InterviewFailed, nil); err != nil {
			uc.logger.Error("reconcile: failed to release reservation", "interview_id", it.ID, "error", err)
		}
		return
	}

	ref := booking.ExternalRef
	if err := uc.cancelExternal(ctx, it.ID, ref); err != nil {
		uc.logger.Warn("reconcile: keeping external booking", "interview_id", it.ID, "external_ref", ref, "error", err)
		if _, err := uc.transition(ctx, it.ID, pending, domain.InterviewConfirmed, &ref); err != nil {
			uc.logger.Error("reconcile: failed to confirm kept booking", "interview_id", it.ID, "error", err)
		}
		return
	}
	if _, err := uc.transition(ctx, it.ID, pending, domain.InterviewFailed, &ref); err != nil {
		uc.logger.Error("reconcile: failed to release reservation", "interview_id", it.ID, "error", err)
	}
}

// undoReplacement releases a replacement whose source could not be retired.
func (uc *bookingUsecase) undoReplacement(ctx context.Context, it *domain.ScheduledInterview) {
	if _, err := uc.transition(ctx, it.ID,
		[]domain.InterviewStatus{domain.InterviewConfirmed}, domain.InterviewCancelled, nil); err != nil {
		uc.logger.Error("failed to release replacement interview", "interview_id", it.ID, "error", err)
		return
	}
	if it.ExternalBookingRef == nil {
		return
	}
	if err := uc.cancelExternal(ctx, it.ID, *it.ExternalBookingRef); err != nil {
		uc.logger.Error("failed to cancel external booking of replacement interview",
			"interview_id", it.ID, "external_ref", *it.ExternalBookingRef, "error", err)
	}
}

func (uc *bookingUsecase) createExternal(ctx context.Context, it *domain.ScheduledInterview) (*domain.ExternalBooking, error) {
	attendees := []domain.Attendee{
		{ID: it.CandidateID, Role: "candidate"},
		{ID: it.RecruiterID, Role: "recruiter"},
	}
	metadata := map[string]string{
		domain.MetadataIdempotencyKey: it.IdempotencyKey,
		"interview_id":                it.ID,
		"job_id":                      strconv.FormatInt(it.JobID, 10),
	}

	started := time.Now()
	defer func() {
		metrics.ExternalDuration.WithLabelValues("create").Observe(time.Since(started).Seconds())
	}()

	var booking *domain.ExternalBooking
	err := retry.Do(ctx, uc.cfg.Retry, domain.IsRetryableProviderError, func(ctx context.Context) error {
		b, err := uc.provider.CreateBooking(ctx, it.Slot, attendees, metadata)
		if err != nil {
			metrics.ExternalAttempts.WithLabelValues("create", "error").Inc()
			return err
		}
		metrics.ExternalAttempts.WithLabelValues("create", "ok").Inc()
		booking = b
		return nil
	}, func(attempt int, err error, wait time.Duration) {
		uc.logger.Warn("external booking attempt failed, retrying",
			"interview_id", it.ID, "attempt", attempt, "backoff", wait, "error", err)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (uc *bookingUsecase) cancelExternal(ctx context.Context, interviewID, ref string) error {
	started := time.Now()
	defer func() {
		metrics.ExternalDuration.WithLabelValues("cancel").Observe(time.Since(started).Seconds())
	}()

	return retry.Do(ctx, uc.cfg.Retry, domain.IsRetryableProviderError, func(ctx context.Context) error {
		if err := uc.provider.CancelBooking(ctx, ref); err != nil {
			metrics.ExternalAttempts.WithLabelValues("cancel", "error").Inc()
			return err
		}
		metrics.ExternalAttempts.WithLabelValues("cancel", "ok").Inc()
		return nil
	}, func(attempt int, err error, wait time.Duration) {
		uc.logger.Warn("external cancel attempt failed, retrying",
			"interview_id", interviewID, "external_ref", ref, "attempt", attempt, "backoff", wait, "error", err)
	})
}

func (uc *bookingUsecase) transition(ctx context.Context, id string, from []domain.InterviewStatus, to domain.InterviewStatus, ref *string) (*domain.ScheduledInterview, error) {
	it, err := uc.interviewRepo.Transition(ctx, id, from, to, ref)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("interview status changed", "interview_id", id, "from", from, "to", to)
	return it, nil
}

// suggest returns mutually free slots near the first preferred slot. Errors
// only cost the suggestions.
func (uc *bookingUsecase) suggest(ctx context.Context, req domain.ScheduleRequest) []domain.TimeSlot {
	if uc.availabilityUC == nil || uc.cfg.SuggestionLimit <= 0 {
		return nil
	}

	first := req.PreferredSlots[0].Start
	from := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	to := from.Add(uc.cfg.SuggestionHorizon)

	mutual, err := uc.availabilityUC.GetMutualSlots(ctx, req.CandidateID, req.RecruiterID, req.Duration(), from, to)
	if err != nil {
		uc.logger.Warn("could not compute suggested times",
			"candidate_id", req.CandidateID, "recruiter_id", req.RecruiterID, "error", err)
		return nil
	}

	now := uc.now()
	suggestions := lo.Filter(mutual, func(slot domain.TimeSlot, _ int) bool {
		if slot.Start.Before(now) {
			return false
		}
		return !lo.ContainsBy(req.PreferredSlots, func(checked domain.TimeSlot) bool {
			return checked.SameInstant(slot)
		})
	})
	if len(suggestions) > uc.cfg.SuggestionLimit {
		suggestions = suggestions[:uc.cfg.SuggestionLimit]
	}
	return suggestions
}

func duplicateError(existing *domain.ScheduledInterview) error {
	details := map[string]interface{}{}
	if existing != nil {
		details["existing_interview_id"] = existing.ID
		details["status"] = existing.Status
	}
	return apperror.Conflict("An identical interview request is already active", details)
}

// raceConflict reports a slot lost to a concurrent reservation made after
// the snapshot was taken.
func raceConflict(slot domain.TimeSlot, req domain.ScheduleRequest, existing *domain.ScheduledInterview) domain.ConflictReport {
	report := domain.ConflictReport{
		ConflictingSlot: slot,
		Reason:          domain.ConflictExistingInterview,
	}
	if existing != nil {
		report.ExistingInterviewID = existing.ID
		report.OwnerID = req.RecruiterID
		if existing.InvolvesOwner(req.CandidateID) {
			report.OwnerID = req.CandidateID
		}
	}
	return report
}

func repoError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Interview not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperror.Conflict("Interview status changed concurrently", nil)
	default:
		return apperror.Internal(err)
	}
}
