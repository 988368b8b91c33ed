package fluentval

import (
	"context"
	"fmt"
	"reflect"
)

// RuleBuilder is the fluent chain returned by RuleFor. Each predicate method
// appends a step to the underlying property rule; the metadata methods
// (WithMessage, WithCode, WithSeverity, WithTranslationKey) configure the most
// recently added step.
type RuleBuilder[T, P any] struct {
	rule *PropertyRule[T, P]
}

// Must appends a synchronous predicate step. The step fails when pred
// returns false.
func (b *RuleBuilder[T, P]) Must(pred func(P) bool) *RuleBuilder[T, P] {
	mustNotBeNil(pred, "predicate")
	b.rule.steps = append(b.rule.steps, &ruleStep[P]{
		test:    pred,
		message: "{PropertyName} is not valid",
		code:    "must",
	})
	return b
}

// MustAsync appends an asynchronous predicate step, deferred until execution
// time. On the synchronous path it receives context.Background().
func (b *RuleBuilder[T, P]) MustAsync(pred func(ctx context.Context, value P) (bool, error)) *RuleBuilder[T, P] {
	mustNotBeNil(pred, "predicate")
	b.rule.steps = append(b.rule.steps, &ruleStep[P]{
		testAsync: pred,
		message:   "{PropertyName} is not valid",
		code:      "must_async",
	})
	return b
}

// NotEmpty appends a step failing on the zero value of P and on empty
// strings, slices and maps.
func (b *RuleBuilder[T, P]) NotEmpty() *RuleBuilder[T, P] {
	b.rule.steps = append(b.rule.steps, &ruleStep[P]{
		test:           func(value P) bool { return !isEmptyValue(value) },
		message:        "{PropertyName} must not be empty",
		code:           "not_empty",
		translationKey: "validation.required",
	})
	return b
}

// NotNil appends a step failing on nil pointers, interfaces, slices and maps.
func (b *RuleBuilder[T, P]) NotNil() *RuleBuilder[T, P] {
	b.rule.steps = append(b.rule.steps, &ruleStep[P]{
		test:           func(value P) bool { return !isNilValue(value) },
		message:        "{PropertyName} must not be nil",
		code:           "not_nil",
		translationKey: "validation.required",
	})
	return b
}

// WithMessage overrides the failure message of the last step. The
// placeholders {PropertyName} and {PropertyValue} are expanded when the
// failure is produced.
func (b *RuleBuilder[T, P]) WithMessage(message string) *RuleBuilder[T, P] {
	b.lastStep().message = message
	return b
}

// WithCode overrides the failure code of the last step.
func (b *RuleBuilder[T, P]) WithCode(code string) *RuleBuilder[T, P] {
	b.lastStep().code = code
	return b
}

// WithSeverity sets the severity of failures produced by the last step.
func (b *RuleBuilder[T, P]) WithSeverity(severity Severity) *RuleBuilder[T, P] {
	b.lastStep().severity = severity
	return b
}

// WithTranslationKey attaches a translation key and optional values to the
// last step for downstream message translation.
func (b *RuleBuilder[T, P]) WithTranslationKey(key string, values map[string]any) *RuleBuilder[T, P] {
	step := b.lastStep()
	step.translationKey = key
	step.translationValues = values
	return b
}

// When restricts this single rule to instances for which pred holds. The
// condition is ANDed with any condition the rule already owns, including
// group-level conditions layered on by a surrounding When scope.
func (b *RuleBuilder[T, P]) When(pred func(T) bool) *RuleBuilder[T, P] {
	mustNotBeNil(pred, "predicate")
	b.rule.AddCondition(pred)
	return b
}

// Unless restricts this single rule to instances for which pred does not hold.
func (b *RuleBuilder[T, P]) Unless(pred func(T) bool) *RuleBuilder[T, P] {
	mustNotBeNil(pred, "predicate")
	b.rule.AddCondition(func(instance T) bool { return !pred(instance) })
	return b
}

// WhenAsync restricts this single rule with a condition evaluated at
// execution time.
func (b *RuleBuilder[T, P]) WhenAsync(pred AsyncPredicate[T]) *RuleBuilder[T, P] {
	mustNotBeNil(pred, "predicate")
	b.rule.AddAsyncCondition(pred)
	return b
}

// UnlessAsync restricts this single rule with a negated condition evaluated
// at execution time.
func (b *RuleBuilder[T, P]) UnlessAsync(pred AsyncPredicate[T]) *RuleBuilder[T, P] {
	mustNotBeNil(pred, "predicate")
	b.rule.AddAsyncCondition(func(ctx context.Context, instance T) (bool, error) {
		ok, err := pred(ctx, instance)
		return !ok, err
	})
	return b
}

// Cascade overrides the cascade mode for this rule's chain only.
func (b *RuleBuilder[T, P]) Cascade(mode CascadeMode) *RuleBuilder[T, P] {
	b.rule.setCascade(mode)
	return b
}

// OverridePropertyName replaces the display name used in failure paths.
func (b *RuleBuilder[T, P]) OverridePropertyName(name string) *RuleBuilder[T, P] {
	mustNotBeEmpty(name, "property name")
	b.rule.name = name
	return b
}

func (b *RuleBuilder[T, P]) lastStep() *ruleStep[P] {
	if len(b.rule.steps) == 0 {
		panic("fluentval: no step to configure; call Must, MustAsync, NotEmpty or NotNil first")
	}
	return b.rule.steps[len(b.rule.steps)-1]
}

// CollectionRuleBuilder is the fluent chain returned by RuleForEach. The
// configured steps run against every element of the extracted collection.
type CollectionRuleBuilder[T, E any] struct {
	rule *CollectionRule[T, E]
}

// Must appends a synchronous per-element predicate step.
func (b *CollectionRuleBuilder[T, E]) Must(pred func(E) bool) *CollectionRuleBuilder[T, E] {
	mustNotBeNil(pred, "predicate")
	b.rule.steps = append(b.rule.steps, &ruleStep[E]{
		test:    pred,
		message: "{PropertyName} is not valid",
		code:    "must",
	})
	return b
}

// MustAsync appends an asynchronous per-element predicate step.
func (b *CollectionRuleBuilder[T, E]) MustAsync(pred func(ctx context.Context, element E) (bool, error)) *CollectionRuleBuilder[T, E] {
	mustNotBeNil(pred, "predicate")
	b.rule.steps = append(b.rule.steps, &ruleStep[E]{
		testAsync: pred,
		message:   "{PropertyName} is not valid",
		code:      "must_async",
	})
	return b
}

// NotEmpty appends a per-element step failing on empty elements.
func (b *CollectionRuleBuilder[T, E]) NotEmpty() *CollectionRuleBuilder[T, E] {
	b.rule.steps = append(b.rule.steps, &ruleStep[E]{
		test:           func(element E) bool { return !isEmptyValue(element) },
		message:        "{PropertyName} must not be empty",
		code:           "not_empty",
		translationKey: "validation.required",
	})
	return b
}

// Where filters which elements the chain runs against. Filtered-out elements
// contribute no failures and keep their original indexes in failure paths.
func (b *CollectionRuleBuilder[T, E]) Where(pred func(E) bool) *CollectionRuleBuilder[T, E] {
	mustNotBeNil(pred, "predicate")
	b.rule.where = pred
	return b
}

// WithMessage overrides the failure message of the last step.
func (b *CollectionRuleBuilder[T, E]) WithMessage(message string) *CollectionRuleBuilder[T, E] {
	b.lastStep().message = message
	return b
}

// WithCode overrides the failure code of the last step.
func (b *CollectionRuleBuilder[T, E]) WithCode(code string) *CollectionRuleBuilder[T, E] {
	b.lastStep().code = code
	return b
}

// WithSeverity sets the severity of failures produced by the last step.
func (b *CollectionRuleBuilder[T, E]) WithSeverity(severity Severity) *CollectionRuleBuilder[T, E] {
	b.lastStep().severity = severity
	return b
}

// When restricts this rule to instances for which pred holds.
func (b *CollectionRuleBuilder[T, E]) When(pred func(T) bool) *CollectionRuleBuilder[T, E] {
	mustNotBeNil(pred, "predicate")
	b.rule.AddCondition(pred)
	return b
}

// Unless restricts this rule to instances for which pred does not hold.
func (b *CollectionRuleBuilder[T, E]) Unless(pred func(T) bool) *CollectionRuleBuilder[T, E] {
	mustNotBeNil(pred, "predicate")
	b.rule.AddCondition(func(instance T) bool { return !pred(instance) })
	return b
}

// Cascade overrides the cascade mode for this rule's chain only.
func (b *CollectionRuleBuilder[T, E]) Cascade(mode CascadeMode) *CollectionRuleBuilder[T, E] {
	b.rule.setCascade(mode)
	return b
}

func (b *CollectionRuleBuilder[T, E]) lastStep() *ruleStep[E] {
	if len(b.rule.steps) == 0 {
		panic("fluentval: no step to configure; call Must, MustAsync or NotEmpty first")
	}
	return b.rule.steps[len(b.rule.steps)-1]
}

// isEmptyValue reports whether v is its type's zero value, or an empty
// string, slice, map or array.
func isEmptyValue(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}

// isNilValue reports whether v is nil or a nil pointer, interface, slice,
// map, channel or function.
func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

func mustNotBeNil(v any, what string) {
	if v == nil || isNilValue(v) {
		panic(fmt.Sprintf("fluentval: %s cannot be nil", what))
	}
}

func mustNotBeEmpty(s, what string) {
	if s == "" {
		panic(fmt.Sprintf("fluentval: %s cannot be empty", what))
	}
}
