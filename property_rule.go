package fluentval

import (
	"context"
	"fmt"
	"strings"
)

// ruleStep is one link in a rule's predicate chain: either a synchronous or
// an asynchronous predicate, together with the failure metadata attached to
// it by the builder.
type ruleStep[P any] struct {
	test      func(value P) bool
	testAsync func(ctx context.Context, value P) (bool, error)

	message  string
	code     string
	severity Severity

	translationKey    string
	translationValues map[string]any
}

func (s *ruleStep[P]) evaluate(ctx context.Context, value P) (bool, error) {
	if s.test != nil {
		return s.test(value), nil
	}
	return s.testAsync(ctx, value)
}

// PropertyRule validates a single property of T: a stable display name plus a
// value extractor, and an ordered step chain. The rule's cascade policy
// governs only its own chain.
type PropertyRule[T, P any] struct {
	ruleBase[T]
	name    string
	extract func(T) P
	steps   []*ruleStep[P]
}

func newPropertyRule[T, P any](name string, extract func(T) P) *PropertyRule[T, P] {
	return &PropertyRule[T, P]{name: name, extract: extract}
}

// Name returns the rule's property display name.
func (r *PropertyRule[T, P]) Name() string {
	return r.name
}

func (r *PropertyRule[T, P]) Validate(vc *Context[T]) ([]Failure, error) {
	return r.run(context.Background(), vc)
}

func (r *PropertyRule[T, P]) ValidateAsync(ctx context.Context, vc *Context[T]) ([]Failure, error) {
	return r.run(ctx, vc)
}

func (r *PropertyRule[T, P]) run(ctx context.Context, vc *Context[T]) ([]Failure, error) {
	ok, err := r.conditionsPass(ctx, vc)
	if err != nil || !ok {
		return nil, err
	}

	value := r.extract(vc.Instance())

	var failures []Failure
	for _, step := range r.steps {
		pass, err := step.evaluate(ctx, value)
		if err != nil {
			return nil, err
		}
		if pass {
			continue
		}
		failures = append(failures, newFailure(vc.PropertyPath(r.name), value, step))
		if r.effectiveCascade(vc) == StopOnFirstFailure {
			break
		}
	}
	return failures, nil
}

// newFailure materializes a failure for a failed step, expanding the
// {PropertyName} and {PropertyValue} message placeholders.
func newFailure[P any](path string, value P, step *ruleStep[P]) Failure {
	message := step.message
	if message == "" {
		message = "validation failed"
	}
	message = strings.ReplaceAll(message, "{PropertyName}", path)
	message = strings.ReplaceAll(message, "{PropertyValue}", fmt.Sprint(value))

	values := step.translationValues
	if step.translationKey != "" {
		values = make(map[string]any, len(step.translationValues)+2)
		for k, v := range step.translationValues {
			values[k] = v
		}
		values["property"] = path
		values["value"] = fmt.Sprint(value)
	}

	return Failure{
		PropertyName:      path,
		Message:           message,
		Code:              step.code,
		Severity:          step.severity,
		AttemptedValue:    value,
		TranslationKey:    step.translationKey,
		TranslationValues: values,
	}
}
