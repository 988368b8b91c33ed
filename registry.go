package fluentval

// ruleRegistry is the insertion-ordered list of rules owned by a validator.
// Iteration order equals registration order and determines failure order.
//
// The registry also carries a transient subscription mechanism: while a
// subscription is active, every appended rule is passed to the subscriber
// callback before Append returns. Composition scopes (When, Unless, RuleSet)
// use this to capture the rules defined inside a lexical block and mutate
// them retroactively.
//
// The registry is not safe for concurrent mutation: rule definition must
// complete before rule execution begins for a given validator instance.
type ruleRegistry[T any] struct {
	rules       []Rule[T]
	subscribers []*registrySubscription[T]
	nextID      int
}

type registrySubscription[T any] struct {
	id int
	fn func(Rule[T])
}

// Append adds a rule to the end of the registry and notifies every active
// subscriber, in subscription order, before returning.
func (r *ruleRegistry[T]) Append(rule Rule[T]) {
	r.rules = append(r.rules, rule)
	for _, sub := range r.subscribers {
		sub.fn(rule)
	}
}

// OnRuleAdded registers a callback invoked for every subsequent Append and
// returns a release function that removes it. Callers must release on every
// exit path, normal or panicking, typically via defer. Subscriptions nest:
// each active subscription sees every addition independently.
func (r *ruleRegistry[T]) OnRuleAdded(fn func(Rule[T])) (release func()) {
	r.nextID++
	sub := &registrySubscription[T]{id: r.nextID, fn: fn}
	r.subscribers = append(r.subscribers, sub)

	return func() {
		for i, s := range r.subscribers {
			if s.id == sub.id {
				r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the current rule list. The rules themselves are
// shared; the backing slice is not.
func (r *ruleRegistry[T]) Snapshot() []Rule[T] {
	out := make([]Rule[T], len(r.rules))
	copy(out, r.rules)
	return out
}

func (r *ruleRegistry[T]) Len() int {
	return len(r.rules)
}
