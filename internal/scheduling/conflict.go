package scheduling

import "go-recruitment-scheduler/internal/domain"

// FindConflict returns the first active interview overlapping slot.
// Interviews that no longer hold their slot are ignored.
func FindConflict(slot domain.TimeSlot, existing []domain.ScheduledInterview) (*domain.ScheduledInterview, bool) {
	for i := range existing {
		if !existing[i].Status.IsActive() {
			continue
		}
		if slot.Overlaps(existing[i].Slot) {
			return &existing[i], true
		}
	}
	return nil, false
}

func HasConflict(slot domain.TimeSlot, existing []domain.ScheduledInterview) bool {
	_, ok := FindConflict(slot, existing)
	return ok
}

// Party is one side of an interview and its committed interviews.
type Party struct {
	OwnerID  string
	Existing []domain.ScheduledInterview
}

// CheckParties checks slot against every party independently and reports
// the first conflict found, or nil if the slot is free for all of them.
func CheckParties(slot domain.TimeSlot, parties ...Party) *domain.ConflictReport {
	for _, p := range parties {
		if hit, ok := FindConflict(slot, p.Existing); ok {
			return &domain.ConflictReport{
				ConflictingSlot:     slot,
				Reason:              domain.ConflictExistingInterview,
				ExistingInterviewID: hit.ID,
				OwnerID:             p.OwnerID,
			}
		}
	}
	return nil
}

// Exclude drops the interview with the given id, if any.
func Exclude(existing []domain.ScheduledInterview, id string) []domain.ScheduledInterview {
	if id == "" {
		return existing
	}
	out := make([]domain.ScheduledInterview, 0, len(existing))
	for _, it := range existing {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
