package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

// Interview lifecycle: requested → pending_external → confirmed / failed,
// then confirmed → cancelled / rescheduled on explicit user action.
const (
	InterviewRequested       InterviewStatus = "requested"
	InterviewPendingExternal InterviewStatus = "pending_external"
	InterviewConfirmed       InterviewStatus = "confirmed"
	InterviewFailed          InterviewStatus = "failed"
	InterviewCancelled       InterviewStatus = "cancelled"
	InterviewRescheduled     InterviewStatus = "rescheduled"
)

var interviewTransitions = map[InterviewStatus][]InterviewStatus{
	InterviewRequested:       {InterviewPendingExternal, InterviewFailed},
	InterviewPendingExternal: {InterviewConfirmed, InterviewFailed},
	InterviewConfirmed:       {InterviewCancelled, InterviewRescheduled},
}

// ActiveInterviewStatuses hold their slot.
var ActiveInterviewStatuses = []InterviewStatus{
	InterviewRequested,
	InterviewPendingExternal,
	InterviewConfirmed,
}

func (s InterviewStatus) IsActive() bool {
	for _, active := range ActiveInterviewStatuses {
		if s == active {
			return true
		}
	}
	return false
}

func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	for _, allowed := range interviewTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ScheduledInterview struct {
	ID                 string          `json:"id"`
	JobID              int64           `json:"job_id"`
	CandidateID        string          `json:"candidate_id"`
	RecruiterID        string          `json:"recruiter_id"`
	Slot               TimeSlot        `json:"slot"`
	Status             InterviewStatus `json:"status"`
	ExternalBookingRef *string         `json:"external_booking_ref,omitempty"`
	IdempotencyKey     string          `json:"idempotency_key"`
	RescheduledFrom    *string         `json:"rescheduled_from,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// InvolvesOwner reports whether ownerID is either party of the interview.
func (i ScheduledInterview) InvolvesOwner(ownerID string) bool {
	return i.CandidateID == ownerID || i.RecruiterID == ownerID
}

var idempotencyNamespace = uuid.MustParse("6f1c2a7e-3d54-4b0e-9a8f-2b1d7c9e4f10")

// IdempotencyKey derives a stable key from the (job, candidate, recruiter, slot) tuple.
func IdempotencyKey(jobID int64, candidateID, recruiterID string, slot TimeSlot) string {
	raw := fmt.Sprintf("%d|%s|%s|%d|%d", jobID, candidateID, recruiterID,
		slot.Start.UTC().UnixNano(), slot.End.UTC().UnixNano())
	return uuid.NewSHA1(idempotencyNamespace, []byte(raw)).String()
}

type ConflictReason string

const (
	ConflictExistingInterview     ConflictReason = "existing_interview"
	ConflictAvailabilityWithdrawn ConflictReason = "availability_withdrawn"
	ConflictExternalBookingFailed ConflictReason = "external_booking_failed"
)

type ConflictReport struct {
	ConflictingSlot     TimeSlot       `json:"conflicting_slot"`
	Reason              ConflictReason `json:"reason"`
	ExistingInterviewID string         `json:"existing_interview_id,omitempty"`
	OwnerID             string         `json:"owner_id,omitempty"`
}

type ScheduleRequest struct {
	JobID           int64      `json:"job_id" validate:"required,gt=0"`
	CandidateID     string     `json:"candidate_id" validate:"required,owner_id"`
	RecruiterID     string     `json:"recruiter_id" validate:"required,owner_id,nefield=CandidateID"`
	PreferredSlots  []TimeSlot `json:"preferred_slots" validate:"required,min=1,max=20,dive"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,gt=0,lte=480"`
}

func (r ScheduleRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

type BookingResult struct {
	Success        bool                `json:"success"`
	Interview      *ScheduledInterview `json:"interview,omitempty"`
	Conflicts      []ConflictReport    `json:"conflicts,omitempty"`
	SuggestedTimes []TimeSlot          `json:"suggested_times,omitempty"`
}

type InterviewRepository interface {
	// Reserve atomically inserts the interview unless an active interview with
	// the same idempotency key exists (ErrDuplicateRequest) or either party has
	// an active interview overlapping the slot (ErrSlotConflict). The interview
	// named by RescheduledFrom is ignored by both checks, but it must still be
	// confirmed and have no other active replacement (ErrAlreadyRescheduled,
	// ErrNotFound when it does not exist). Failures are returned as
	// *ReservationError.
	Reserve(ctx context.Context, interview *ScheduledInterview) error
	GetByID(ctx context.Context, id string) (*ScheduledInterview, error)
	ListActiveByOwner(ctx context.Context, ownerID string) ([]ScheduledInterview, error)
	// Transition is a compare-and-set on status. externalRef is stored when non-nil.
	Transition(ctx context.Context, id string, from []InterviewStatus, to InterviewStatus, externalRef *string) (*ScheduledInterview, error)
	// ListStalePending returns requested / pending_external interviews last updated before cutoff.
	ListStalePending(ctx context.Context, cutoff time.Time) ([]ScheduledInterview, error)
}

type BookingUsecase interface {
	ScheduleInterview(ctx context.Context, req ScheduleRequest) (*BookingResult, error)
	GetInterview(ctx context.Context, id string) (*ScheduledInterview, error)
	CancelInterview(ctx context.Context, id string) error
	RescheduleInterview(ctx context.Context, id string, preferredSlots []TimeSlot) (*BookingResult, error)
	ExpireStalePending(ctx context.Context) (int, error)
}
