package validation

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinPasswordLength is counted in runes.
	MinPasswordLength = 12

	// PolicySpecialChars is the special character set the password policy accepts.
	PolicySpecialChars = "!@#$%^&*()-_+=[]{};:'\"\\|,.<>/?`~"
)

// EvaluatePassword checks password against the registration policy. All
// violated rules are reported together.
func EvaluatePassword(password string) Result {
	res := Result{}

	if n := utf8.RuneCountInString(password); n < MinPasswordLength {
		res[RuleMinLength] = Violation{RequiredLength: MinPasswordLength, ActualLength: n}
	}
	if !hasUpper(password) {
		res.add(RuleUpper)
	}
	if !hasLower(password) {
		res.add(RuleLower)
	}
	if !hasDigit(password) {
		res.add(RuleNumber)
	}
	if !strings.ContainsAny(password, PolicySpecialChars) {
		res.add(RuleSpecial)
	}
	if IsCommonPassword(password) {
		res.add(RuleCommon)
	}

	return res
}

func hasUpper(s string) bool {
	return containsRange(s, 'A', 'Z')
}

func hasLower(s string) bool {
	return containsRange(s, 'a', 'z')
}

func hasDigit(s string) bool {
	return containsRange(s, '0', '9')
}

func containsRange(s string, lo, hi byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= lo && s[i] <= hi {
			return true
		}
	}
	return false
}
