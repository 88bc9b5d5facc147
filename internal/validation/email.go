package validation

import (
	"strings"

	"ctchen222/signup-form/internal/validator"
)

// ValidateEmail checks that value is present and shaped like an email address.
func ValidateEmail(value string) Result {
	res := Result{}

	if strings.TrimSpace(value) == "" {
		res.add(RuleRequired)
		return res
	}
	if err := validator.Var(value, "email"); err != nil {
		res.add(RuleEmail)
	}
	return res
}
