package fluentval

import "context"

// CollectionRule validates each element of an enumerable property. Every
// element runs the same step chain with an indexed property path such as
// "items[2]". With StopOnFirstFailure the whole rule stops at the first
// failing step of the first failing element; sibling rules are unaffected.
type CollectionRule[T, E any] struct {
	ruleBase[T]
	name    string
	extract func(T) []E
	where   func(E) bool
	steps   []*ruleStep[E]
}

func newCollectionRule[T, E any](name string, extract func(T) []E) *CollectionRule[T, E] {
	return &CollectionRule[T, E]{name: name, extract: extract}
}

// Name returns the rule's property display name.
func (r *CollectionRule[T, E]) Name() string {
	return r.name
}

func (r *CollectionRule[T, E]) Validate(vc *Context[T]) ([]Failure, error) {
	return r.run(context.Background(), vc)
}

func (r *CollectionRule[T, E]) ValidateAsync(ctx context.Context, vc *Context[T]) ([]Failure, error) {
	return r.run(ctx, vc)
}

func (r *CollectionRule[T, E]) run(ctx context.Context, vc *Context[T]) ([]Failure, error) {
	ok, err := r.conditionsPass(ctx, vc)
	if err != nil || !ok {
		return nil, err
	}

	var failures []Failure
	for i, element := range r.extract(vc.Instance()) {
		if r.where != nil && !r.where(element) {
			continue
		}

		for _, step := range r.steps {
			pass, err := step.evaluate(ctx, element)
			if err != nil {
				return nil, err
			}
			if pass {
				continue
			}
			failures = append(failures, newFailure(vc.IndexedPropertyPath(r.name, i), element, step))
			if r.effectiveCascade(vc) == StopOnFirstFailure {
				return failures, nil
			}
		}
	}
	return failures, nil
}
