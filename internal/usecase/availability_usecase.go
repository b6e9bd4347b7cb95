package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/internal/scheduling"
	"go-recruitment-scheduler/pkg/apperror"
	"go-recruitment-scheduler/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type availabilityUsecase struct {
	availabilityRepo domain.AvailabilityRepository
	interviewRepo    domain.InterviewRepository
	validate         *validator.Validate
	step             time.Duration
	logger           *slog.Logger
}

// NewAvailabilityUsecase creates a new availability usecase. step is the slot
// grid used for every owner so mutual slots line up.
func NewAvailabilityUsecase(
	availabilityRepo domain.AvailabilityRepository,
	interviewRepo domain.InterviewRepository,
	validate *validator.Validate,
	step time.Duration,
	logger *slog.Logger,
) domain.AvailabilityUsecase {
	if step <= 0 {
		step = scheduling.DefaultStep
	}
	return &availabilityUsecase{
		availabilityRepo: availabilityRepo,
		interviewRepo:    interviewRepo,
		validate:         validate,
		step:             step,
		logger:           logger,
	}
}

func (uc *availabilityUsecase) AddWindow(ctx context.Context, window *domain.AvailabilityWindow) error {
	if err := uc.validate.Struct(window); err != nil {
		return apperror.Validation("Invalid availability window", validation.FormatValidationErrors(err))
	}
	if err := uc.ensureOwner(ctx, window.OwnerID); err != nil {
		return err
	}
	if window.Status == "" {
		window.Status = domain.WindowAvailable
	}

	if err := uc.availabilityRepo.Create(ctx, window); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetAvailableSlots expands the owner's available windows inside [from, to)
// and drops every slot that overlaps one of the owner's active interviews.
// The result is ordered by start and holds each instant once.
func (uc *availabilityUsecase) GetAvailableSlots(ctx context.Context, q domain.SlotQuery) ([]domain.TimeSlot, error) {
	if q.Duration <= 0 {
		return nil, apperror.BadRequest("Duration must be positive")
	}
	if !q.From.Before(q.To) {
		return nil, apperror.BadRequest("Range start must be before range end")
	}
	if err := uc.ensureOwner(ctx, q.OwnerID); err != nil {
		return nil, err
	}

	windows, err := uc.availabilityRepo.ListByOwner(ctx, q.OwnerID, q.From, q.To)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	busy, err := uc.interviewRepo.ListActiveByOwner(ctx, q.OwnerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	slots := []domain.TimeSlot{}
	for _, window := range windows {
		seq, err := scheduling.Slots(window, q.Duration, uc.step)
		if err != nil {
			uc.logger.Warn("skipping unusable availability window", "window_id", window.ID, "owner_id", window.OwnerID, "error", err)
			continue
		}
		for slot := range seq {
			if slot.End.After(q.To) {
				break
			}
			if slot.Start.Before(q.From) || scheduling.HasConflict(slot, busy) {
				continue
			}
			slots = append(slots, slot)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		return slots[i].End.Before(slots[j].End)
	})
	return lo.UniqBy(slots, func(s domain.TimeSlot) [2]int64 {
		return [2]int64{s.Start.UnixNano(), s.End.UnixNano()}
	}), nil
}

// GetMutualSlots intersects both owners' free slots generated on the same grid.
func (uc *availabilityUsecase) GetMutualSlots(ctx context.Context, candidateID, recruiterID string, duration time.Duration, from, to time.Time) ([]domain.TimeSlot, error) {
	candidateSlots, err := uc.GetAvailableSlots(ctx, domain.SlotQuery{OwnerID: candidateID, Duration: duration, From: from, To: to})
	if err != nil {
		return nil, err
	}
	recruiterSlots, err := uc.GetAvailableSlots(ctx, domain.SlotQuery{OwnerID: recruiterID, Duration: duration, From: from, To: to})
	if err != nil {
		return nil, err
	}
	return scheduling.Intersect(candidateSlots, recruiterSlots), nil
}

func (uc *availabilityUsecase) ensureOwner(ctx context.Context, ownerID string) error {
	exists, err := uc.availabilityRepo.OwnerExists(ctx, ownerID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !exists {
		return apperror.NotFound("Owner not found")
	}
	return nil
}
