package domain

import "strings"

type Proficiency string

const (
	ProficiencyNovice       Proficiency = "novice"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyExpert       Proficiency = "expert"
)

// Skill is a free-text skill entry attached to a candidate or a job.
// Names are never compared directly; use Key.
type Skill struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Proficiency Proficiency `json:"proficiency,omitempty" validate:"omitempty,oneof=novice intermediate expert"`
	Category    string      `json:"category,omitempty"`
	Required    bool        `json:"required,omitempty"`
}

// SkillKey is the normalized form of a skill name.
type SkillKey string

// NormalizeSkillName lower-cases and trims a skill name.
func NormalizeSkillName(name string) SkillKey {
	return SkillKey(strings.ToLower(strings.TrimSpace(name)))
}

func (s Skill) Key() SkillKey {
	return NormalizeSkillName(s.Name)
}

// FuzzyMatches reports whether either key contains the other. A blank key is
// contained in every key.
func (k SkillKey) FuzzyMatches(other SkillKey) bool {
	return strings.Contains(string(k), string(other)) || strings.Contains(string(other), string(k))
}
