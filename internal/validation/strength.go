package validation

import (
	"strings"
	"unicode/utf8"
)

// StrengthSpecialChars is the special set the strength meter counts.
// It is narrower than PolicySpecialChars; the two are kept apart so the meter
// and the policy keep their existing behaviour.
const StrengthSpecialChars = "!@#$%^&*"

// MaxStrengthScore is the highest score ScorePassword returns.
const MaxStrengthScore = 3

var strengthLabels = [...]string{"Too weak", "Weak", "Medium", "Strong"}

// ScorePassword returns an advisory strength score in [0, MaxStrengthScore].
// It never gates submission.
func ScorePassword(password string) int {
	satisfied := 0
	if utf8.RuneCountInString(password) >= MinPasswordLength {
		satisfied++
	}
	if hasUpper(password) {
		satisfied++
	}
	if hasLower(password) {
		satisfied++
	}
	if hasDigit(password) {
		satisfied++
	}
	if strings.ContainsAny(password, StrengthSpecialChars) {
		satisfied++
	}
	return min(MaxStrengthScore, satisfied/2)
}

// StrengthLabel maps a score to the text shown next to the password field.
func StrengthLabel(score int) string {
	score = max(0, min(MaxStrengthScore, score))
	return strengthLabels[score]
}
