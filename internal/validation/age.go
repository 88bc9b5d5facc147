package validation

import (
	"strings"
	"time"
)

// MinimumAge is the youngest age, in whole years, allowed to register.
const MinimumAge = 18

// ValidateAge checks an ISO date of birth (YYYY-MM-DD) against now.
func ValidateAge(value string, now time.Time) Result {
	res := Result{}

	value = strings.TrimSpace(value)
	if value == "" {
		res.add(RuleRequired)
		return res
	}

	dob, err := time.Parse(time.DateOnly, value)
	if err != nil {
		res.add(RuleInvalidDate)
		return res
	}

	if AgeOn(dob, now) < MinimumAge {
		res.add(RuleUnderage)
	}
	return res
}

// AgeOn returns the age in whole years of someone born on dob, as of now.
// Only the calendar dates matter; times of day and zones are ignored.
func AgeOn(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
