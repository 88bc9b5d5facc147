package validation

import (
	"reflect"
	"strings"
	"testing"
)

func TestEvaluatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []Rule
	}{
		{
			name:     "Strong password is valid",
			password: "Str0ng!Password123",
			want:     []Rule{},
		},
		{
			name:     "Policy-only special character is accepted",
			password: "Str0ngPassword~12",
			want:     []Rule{},
		},
		{
			name:     "Short password",
			password: "Short1!",
			want:     []Rule{RuleMinLength},
		},
		{
			name:     "Missing upper and special",
			password: "alllowercase1234",
			want:     []Rule{RuleSpecial, RuleUpper},
		},
		{
			name:     "Common password",
			password: "password",
			want:     []Rule{RuleCommon, RuleMinLength, RuleNumber, RuleSpecial, RuleUpper},
		},
		{
			name:     "Common password matched case-insensitively",
			password: "Administrator",
			want:     []Rule{RuleCommon, RuleNumber, RuleSpecial},
		},
		{
			name:     "Empty password violates everything but common",
			password: "",
			want:     []Rule{RuleLower, RuleMinLength, RuleNumber, RuleSpecial, RuleUpper},
		},
		{
			name:     "Non-ASCII letters do not count as upper or lower",
			password: "ÄÖÜäöü123456!",
			want:     []Rule{RuleLower, RuleUpper},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePassword(tt.password).Rules()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EvaluatePassword(%q) got = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestEvaluatePassword_MinLengthDetail(t *testing.T) {
	for n := 0; n < MinPasswordLength; n++ {
		password := strings.Repeat("a", n)
		res := EvaluatePassword(password)
		v, ok := res[RuleMinLength]
		if !ok {
			t.Fatalf("EvaluatePassword(%q) missing minLength", password)
		}
		if v.RequiredLength != MinPasswordLength || v.ActualLength != n {
			t.Errorf("minLength detail got = %+v, want required %d actual %d", v, MinPasswordLength, n)
		}
	}

	if res := EvaluatePassword("Ab1!ééééééééé"); res.Has(RuleMinLength) {
		t.Errorf("length should be counted in runes, got %v", res.Rules())
	}
}

func TestEvaluatePassword_EverySpecialCharacterSatisfiesPolicy(t *testing.T) {
	for _, r := range PolicySpecialChars {
		password := "Abcdefghijk1" + string(r)
		if res := EvaluatePassword(password); !res.Valid() {
			t.Errorf("EvaluatePassword(%q) got = %v, want valid", password, res.Rules())
		}
	}
}

func TestIsCommonPassword(t *testing.T) {
	if !IsCommonPassword("QWERTY") {
		t.Error("IsCommonPassword(QWERTY) got = false, want true")
	}
	if IsCommonPassword("Str0ng!Password12") {
		t.Error("IsCommonPassword(Str0ng!Password12) got = true, want false")
	}
}
