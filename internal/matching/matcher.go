// Package matching scores candidates against job skill requirements.
package matching

import (
	"math"

	"go-recruitment-scheduler/internal/domain"
)

const (
	requiredWeight  = 0.7
	preferredWeight = 0.3
)

// Match scores one candidate against a job's required and preferred skills.
// Empty required skills score 100, empty preferred skills score 0.
func Match(candidateSkills, requiredSkills, preferredSkills []domain.Skill) domain.MatchResult {
	idx := newSkillIndex(candidateSkills)

	matchedRequired, gaps := partition(idx, requiredSkills)
	matchedPreferred, _ := partition(idx, preferredSkills)

	requiredScore := 100.0
	if len(requiredSkills) > 0 {
		requiredScore = float64(len(matchedRequired)) / float64(len(requiredSkills)) * 100
	}
	preferredScore := 0.0
	if len(preferredSkills) > 0 {
		preferredScore = float64(len(matchedPreferred)) / float64(len(preferredSkills)) * 100
	}

	score := int(math.Round(requiredScore*requiredWeight + preferredScore*preferredWeight))
	score = max(0, min(100, score))

	matching := make([]domain.Skill, 0, len(matchedRequired)+len(matchedPreferred))
	matching = append(matching, matchedRequired...)
	matching = append(matching, matchedPreferred...)

	return domain.MatchResult{
		Score:          score,
		MatchingSkills: matching,
		SkillGaps:      gaps,
		FitTier:        domain.FitTierForScore(score),
	}
}

// partition splits job skills into the candidate skills that matched them and the unmatched job skills.
func partition(idx *skillIndex, jobSkills []domain.Skill) (matched, unmatched []domain.Skill) {
	matched = []domain.Skill{}
	unmatched = []domain.Skill{}
	for _, js := range jobSkills {
		if cs, ok := idx.find(js.Key()); ok {
			matched = append(matched, cs)
			continue
		}
		unmatched = append(unmatched, js)
	}
	return matched, unmatched
}

// skillIndex looks candidate skills up by normalized key, falling back to
// substring containment in candidate order. Containment is approximate:
// "java" matches "javascript".
type skillIndex struct {
	byKey map[domain.SkillKey]domain.Skill
	order []domain.Skill
}

func newSkillIndex(skills []domain.Skill) *skillIndex {
	idx := &skillIndex{
		byKey: make(map[domain.SkillKey]domain.Skill, len(skills)),
		order: make([]domain.Skill, 0, len(skills)),
	}
	for _, s := range skills {
		key := s.Key()
		if _, dup := idx.byKey[key]; !dup {
			idx.byKey[key] = s
		}
		idx.order = append(idx.order, s)
	}
	return idx
}

func (idx *skillIndex) find(key domain.SkillKey) (domain.Skill, bool) {
	if s, ok := idx.byKey[key]; ok {
		return s, true
	}
	for _, s := range idx.order {
		if s.Key().FuzzyMatches(key) {
			return s, true
		}
	}
	return domain.Skill{}, false
}
