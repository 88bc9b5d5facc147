package validation

import "testing"

func TestScorePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{name: "Empty", password: "", want: 0},
		{name: "Lowercase only", password: "abc", want: 0},
		{name: "Lower and upper", password: "abcD", want: 1},
		{name: "Lower, upper, digit", password: "abcD1", want: 1},
		{name: "Lower, upper, digit, special", password: "abcD1!", want: 2},
		{name: "All five criteria", password: "abcD1!abcdefgh", want: 2},
		{name: "Four criteria with length", password: "abcdefghijK1", want: 2},
		{name: "Policy-only special does not count", password: "abcD1~", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScorePassword(tt.password); got != tt.want {
				t.Errorf("ScorePassword(%q) got = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestScorePassword_MonotonicAsCriteriaAccumulate(t *testing.T) {
	// Each step adds one satisfied criterion to the previous password.
	steps := []string{
		"",
		"abc",
		"abcD",
		"abcD1",
		"abcD1!",
		"abcD1!xxxxxx",
	}

	prev := -1
	for _, p := range steps {
		got := ScorePassword(p)
		if got < 0 || got > MaxStrengthScore {
			t.Fatalf("ScorePassword(%q) = %d, out of range", p, got)
		}
		if got < prev {
			t.Errorf("ScorePassword(%q) = %d decreased from %d", p, got, prev)
		}
		prev = got
	}
}

func TestStrengthLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: -1, want: "Too weak"},
		{score: 0, want: "Too weak"},
		{score: 1, want: "Weak"},
		{score: 2, want: "Medium"},
		{score: 3, want: "Strong"},
		{score: 7, want: "Strong"},
	}

	for _, tt := range tests {
		if got := StrengthLabel(tt.score); got != tt.want {
			t.Errorf("StrengthLabel(%d) got = %q, want %q", tt.score, got, tt.want)
		}
	}
}
