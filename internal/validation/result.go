// Package validation holds the pure field checks used by the registration form.
// Every check returns a Result value; none of them return errors.
package validation

import "sort"

// Rule names a single violated constraint.
type Rule string

const (
	RuleMinLength   Rule = "minLength"
	RuleUpper       Rule = "upper"
	RuleLower       Rule = "lower"
	RuleNumber      Rule = "number"
	RuleSpecial     Rule = "special"
	RuleCommon      Rule = "common"
	RuleRequired    Rule = "required"
	RuleUnderage    Rule = "underage"
	RuleEmail       Rule = "email"
	RuleInvalidDate Rule = "invalidDate"
)

// Violation carries rule specific detail. Only minLength fills it in.
type Violation struct {
	RequiredLength int
	ActualLength   int
}

// Result maps each violated rule to its detail. An empty Result is valid.
type Result map[Rule]Violation

// Valid reports whether no rule was violated.
func (r Result) Valid() bool {
	return len(r) == 0
}

// Has reports whether rule was violated.
func (r Result) Has(rule Rule) bool {
	_, ok := r[rule]
	return ok
}

// Rules returns the violated rule names in a stable order.
func (r Result) Rules() []Rule {
	rules := make([]Rule, 0, len(r))
	for rule := range r {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })
	return rules
}

func (r Result) add(rule Rule) {
	r[rule] = Violation{}
}
