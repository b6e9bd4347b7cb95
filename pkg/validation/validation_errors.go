package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"JobID":           "Job",
	"CandidateID":     "Candidate",
	"RecruiterID":     "Recruiter",
	"OwnerID":         "Owner",
	"PreferredSlots":  "Preferred slots",
	"DurationMinutes": "Duration (minutes)",
	"Start":           "Start time",
	"End":             "End time",
	"Timezone":        "Timezone",
	"Status":          "Status",
	"Name":            "Skill name",
	"Proficiency":     "Proficiency",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := GetFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s item(s)", label, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", label, e.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", label, GetFieldLabel(e.Param()))
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", label, GetFieldLabel(e.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, e.Param())
	case "valid_timezone":
		return fmt.Sprintf("%s must be an IANA timezone name", label)
	case "owner_id":
		return fmt.Sprintf("%s has an invalid format", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// GetFieldLabel returns user-friendly label for a field name
func GetFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
