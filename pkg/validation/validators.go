package validation

import (
	"regexp"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
)

// Owner ids are opaque user ids: letters, digits, dash and underscore.
var ownerIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_timezone", ValidTimezone)
	_ = v.RegisterValidation("owner_id", ValidOwnerID)
}

// ValidTimezone accepts empty values and IANA location names.
func ValidTimezone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := time.LoadLocation(val)
	return err == nil
}

func ValidOwnerID(fl validator.FieldLevel) bool {
	return ownerIDRegex.MatchString(fl.Field().String())
}
