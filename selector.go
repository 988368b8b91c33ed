package fluentval

import "slices"

// RuleSetAll is the wildcard rule-set name that admits every rule.
const RuleSetAll = "*"

// RuleSetDefault names the implicit rule set that untagged rules belong to.
const RuleSetDefault = "default"

// Selector decides whether a rule should run for the current call, given the
// rule's tags and the rule sets requested by the caller. Implementations must
// be pure predicates: the engine may call them any number of times.
type Selector interface {
	CanExecute(ruleSets []string, selected []string) bool
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(ruleSets []string, selected []string) bool

func (f SelectorFunc) CanExecute(ruleSets []string, selected []string) bool {
	return f(ruleSets, selected)
}

// defaultSelector implements the standard rule-set semantics: with no
// selection only untagged rules run; with a selection only rules whose tags
// intersect it run, where "default" also admits untagged rules and "*"
// admits everything.
type defaultSelector struct{}

func (defaultSelector) CanExecute(ruleSets []string, selected []string) bool {
	if len(selected) == 0 {
		return len(ruleSets) == 0 || slices.Contains(ruleSets, RuleSetDefault)
	}

	for _, name := range selected {
		if name == RuleSetAll {
			return true
		}
		if name == RuleSetDefault && len(ruleSets) == 0 {
			return true
		}
		if slices.Contains(ruleSets, name) {
			return true
		}
	}
	return false
}
