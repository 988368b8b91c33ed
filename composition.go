package fluentval

import (
	"context"
	"strings"
)

// capture runs fn with an active registry subscription and returns the rules
// appended during fn, in order. The subscription is released on every exit
// path, including panics out of fn, before the caller mutates the capture.
func (v *Validator[T]) capture(fn func()) []Rule[T] {
	var captured []Rule[T]
	release := v.registry.OnRuleAdded(func(rule Rule[T]) {
		captured = append(captured, rule)
	})
	defer release()

	fn()
	return captured
}

// RuleSet tags every rule defined inside fn with the given rule-set names.
// Names are split on commas and semicolons and trimmed. Unlike the When
// family, tags are assigned as each rule is added: with nested scopes every
// active subscription rewrites the tags in subscription order, so the
// innermost scope wins rather than the sets being unioned.
func (v *Validator[T]) RuleSet(names string, fn func()) {
	mustNotBeNil(fn, "rule set body")
	tags := splitRuleSetNames(names)
	if len(tags) == 0 {
		panic("fluentval: rule set names cannot be empty")
	}

	release := v.registry.OnRuleAdded(func(rule Rule[T]) {
		rule.SetRuleSets(tags)
	})
	defer release()

	fn()
}

// When conditions every rule defined inside fn on pred. The condition is
// layered on after fn completes, so per-rule conditions added by a rule's
// own fluent chain are already present and are ANDed with it.
func (v *Validator[T]) When(pred func(T) bool, fn func()) {
	mustNotBeNil(pred, "predicate")
	mustNotBeNil(fn, "condition body")

	for _, rule := range v.capture(fn) {
		rule.AddCondition(pred)
	}
}

// Unless conditions every rule defined inside fn on the negation of pred.
func (v *Validator[T]) Unless(pred func(T) bool, fn func()) {
	mustNotBeNil(pred, "predicate")
	v.When(func(instance T) bool { return !pred(instance) }, fn)
}

// WhenAsync conditions every rule defined inside fn on an asynchronous
// predicate, evaluated at execution time with the call's context.
func (v *Validator[T]) WhenAsync(pred AsyncPredicate[T], fn func()) {
	mustNotBeNil(pred, "predicate")
	mustNotBeNil(fn, "condition body")

	for _, rule := range v.capture(fn) {
		rule.AddAsyncCondition(pred)
	}
}

// UnlessAsync conditions every rule defined inside fn on the negation of an
// asynchronous predicate.
func (v *Validator[T]) UnlessAsync(pred AsyncPredicate[T], fn func()) {
	mustNotBeNil(pred, "predicate")
	v.WhenAsync(func(ctx context.Context, instance T) (bool, error) {
		ok, err := pred(ctx, instance)
		return !ok, err
	}, fn)
}

func splitRuleSetNames(names string) []string {
	var tags []string
	for _, part := range strings.FieldsFunc(names, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
