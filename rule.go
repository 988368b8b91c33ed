package fluentval

import "context"

// AsyncPredicate is a condition evaluated at execution time on the
// asynchronous path. On the synchronous path it receives context.Background().
type AsyncPredicate[T any] func(ctx context.Context, instance T) (bool, error)

// Rule is the executable validation unit: a property rule, a per-element
// collection rule, or an included validator. The engine drives every variant
// through the same contract and treats the returned failures as data.
//
// Validate and ValidateAsync produce a fresh, finite failure list per call.
// Both respect the rule's conditions and cascade policy; neither is safe to
// call concurrently with rule definition.
type Rule[T any] interface {
	Validate(vc *Context[T]) ([]Failure, error)
	ValidateAsync(ctx context.Context, vc *Context[T]) ([]Failure, error)

	// RuleSets returns the rule-set tags assigned to this rule. Untagged
	// rules run whenever no explicit selection is made.
	RuleSets() []string

	// SetRuleSets replaces the rule's tags. Used by RuleSet scopes; the most
	// recently applied scope wins on overlap.
	SetRuleSets(names []string)

	// AddCondition adds a synchronous condition ANDed with any the rule
	// already owns. The rule contributes no failures unless all pass.
	AddCondition(cond func(T) bool)

	// AddAsyncCondition adds a condition deferred until execution time.
	AddAsyncCondition(cond AsyncPredicate[T])
}

// ruleBase carries the state shared by every rule variant: rule-set tags,
// active conditions and the per-rule cascade override.
type ruleBase[T any] struct {
	ruleSets        []string
	conditions      []func(T) bool
	asyncConditions []AsyncPredicate[T]
	cascade         CascadeMode
	cascadeSet      bool
}

func (b *ruleBase[T]) RuleSets() []string {
	return b.ruleSets
}

func (b *ruleBase[T]) SetRuleSets(names []string) {
	b.ruleSets = names
}

func (b *ruleBase[T]) AddCondition(cond func(T) bool) {
	b.conditions = append(b.conditions, cond)
}

func (b *ruleBase[T]) AddAsyncCondition(cond AsyncPredicate[T]) {
	b.asyncConditions = append(b.asyncConditions, cond)
}

func (b *ruleBase[T]) setCascade(mode CascadeMode) {
	b.cascade = mode
	b.cascadeSet = true
}

// effectiveCascade resolves the cascade mode for one execution: the per-rule
// override if set, otherwise the calling validator's mode carried in the
// context.
func (b *ruleBase[T]) effectiveCascade(vc *Context[T]) CascadeMode {
	if b.cascadeSet {
		return b.cascade
	}
	return vc.cascade
}

// conditionsPass evaluates the rule's conditions against the instance.
// Synchronous conditions run first, then asynchronous ones in order.
func (b *ruleBase[T]) conditionsPass(ctx context.Context, vc *Context[T]) (bool, error) {
	for _, cond := range b.conditions {
		if !cond(vc.Instance()) {
			return false, nil
		}
	}
	for _, cond := range b.asyncConditions {
		ok, err := cond(ctx, vc.Instance())
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
