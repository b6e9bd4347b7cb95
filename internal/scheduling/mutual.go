package scheduling

import "go-recruitment-scheduler/internal/domain"

type instantKey struct {
	start, end int64
}

func keyOf(s domain.TimeSlot) instantKey {
	return instantKey{start: s.Start.UnixNano(), end: s.End.UnixNano()}
}

// Intersect returns the slots of a whose start and end instants also appear
// in b, in a's order and without duplicates. Overlapping but differently
// aligned slots are not mutual.
func Intersect(a, b []domain.TimeSlot) []domain.TimeSlot {
	inB := make(map[instantKey]struct{}, len(b))
	for _, s := range b {
		inB[keyOf(s)] = struct{}{}
	}

	out := []domain.TimeSlot{}
	seen := make(map[instantKey]struct{}, len(a))
	for _, s := range a {
		k := keyOf(s)
		if _, ok := inB[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
