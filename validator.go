package fluentval

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// Definition describes the statically-defined rules for a validator type.
// Define builds the rules of each Definition type at most once per process
// and shares the snapshot across instances (unless caching is disabled).
type Definition[T any] interface {
	Define(v *Validator[T])
}

// Validator composes and executes validation rules against instances of T.
// Rule definition must complete before the first validation call; after that
// a Validator is safe for concurrent use because execution never mutates it.
type Validator[T any] struct {
	registry    *ruleRegistry[T]
	cache       *RuleCache
	noCache     bool
	cascade     CascadeMode
	cascadeSet  bool
	preValidate func(vc *Context[T], result *Result) bool
	logger      *slog.Logger
	selector    Selector
}

// Option configures a validator during construction.
type Option[T any] func(*Validator[T])

// WithCascade overrides the validator-wide cascade mode. Without it the
// process-wide default is resolved lazily at each validation call.
func WithCascade[T any](mode CascadeMode) Option[T] {
	return func(v *Validator[T]) {
		v.cascade = mode
		v.cascadeSet = true
	}
}

// WithRuleCache injects the cache used by Define for this validator's
// definition. Defaults to the shared process-wide cache.
func WithRuleCache[T any](cache *RuleCache) Option[T] {
	return func(v *Validator[T]) {
		mustNotBeNil(cache, "rule cache")
		v.cache = cache
	}
}

// WithoutRuleCache makes Define run the definition on every construction and
// store nothing.
func WithoutRuleCache[T any]() Option[T] {
	return func(v *Validator[T]) { v.noCache = true }
}

// WithPreValidate installs a hook invoked before any rule runs. Returning
// false short-circuits the call, returning whatever the hook placed into the
// result.
func WithPreValidate[T any](hook func(vc *Context[T], result *Result) bool) Option[T] {
	return func(v *Validator[T]) {
		mustNotBeNil(hook, "pre-validate hook")
		v.preValidate = hook
	}
}

// WithLogger attaches a structured logger; the engine logs rule execution and
// skips at debug level. Defaults to a discard logger.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(v *Validator[T]) {
		mustNotBeNil(logger, "logger")
		v.logger = logger
	}
}

// WithSelector replaces the rule-set selector used for every call on this
// validator.
func WithSelector[T any](selector Selector) Option[T] {
	return func(v *Validator[T]) {
		mustNotBeNil(selector, "selector")
		v.selector = selector
	}
}

// New creates an empty validator. Rules are added with RuleFor, RuleForEach,
// Include and the composition scopes.
func New[T any](opts ...Option[T]) *Validator[T] {
	v := &Validator[T]{
		registry: &ruleRegistry[T]{},
		cache:    defaultRuleCache,
		logger:   slog.New(slog.DiscardHandler),
		selector: defaultSelector{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Define creates a validator from a definition type, building the rule list
// at most once per definition type and copying the cached snapshot into the
// new instance. Instance-local rules appended afterwards never enter the
// cache. Concurrent first constructions of the same type share one build.
func Define[T any](def Definition[T], opts ...Option[T]) *Validator[T] {
	mustNotBeNil(def, "definition")

	v := New[T](opts...)
	if v.noCache || ruleCacheDisabledByEnv() {
		def.Define(v)
		return v
	}

	key := reflect.TypeOf(def)
	snapshot := v.cache.GetOrBuild(key, func() any {
		builder := New[T]()
		def.Define(builder)
		return builder.registry.Snapshot()
	}).([]Rule[T])

	// Copy the snapshot so ad-hoc rules appended to this instance never
	// reach the cached list.
	v.registry.rules = make([]Rule[T], len(snapshot))
	copy(v.registry.rules, snapshot)
	return v
}

// RuleFor targets one property of T, identified by a stable display name and
// a value extractor, and returns the fluent chain for it. The rule is
// appended to the validator immediately, so surrounding composition scopes
// capture it even before the chain is configured.
func RuleFor[T, P any](v *Validator[T], name string, extract func(T) P) *RuleBuilder[T, P] {
	mustNotBeEmpty(name, "property name")
	mustNotBeNil(extract, "extractor")

	rule := newPropertyRule[T, P](name, extract)
	v.registry.Append(rule)
	return &RuleBuilder[T, P]{rule: rule}
}

// RuleForEach targets each element of an enumerable property of T.
func RuleForEach[T, E any](v *Validator[T], name string, extract func(T) []E) *CollectionRuleBuilder[T, E] {
	mustNotBeEmpty(name, "property name")
	mustNotBeNil(extract, "extractor")

	rule := newCollectionRule[T, E](name, extract)
	v.registry.Append(rule)
	return &CollectionRuleBuilder[T, E]{rule: rule}
}

// Include embeds another validator's entire rule set as one composite rule,
// appended immediately. Its cascade policy governs only its internal chain.
func (v *Validator[T]) Include(included *Validator[T]) {
	mustNotBeNil(included, "included validator")
	v.registry.Append(&includeRule[T]{included: included})
}

// Rules returns a snapshot of the validator's current rule list, in
// registration order.
func (v *Validator[T]) Rules() []Rule[T] {
	return v.registry.Snapshot()
}

func (v *Validator[T]) rules() []Rule[T] {
	return v.registry.rules
}

// cascadeMode resolves lazily so a process-wide default change applies to
// already-built validators.
func (v *Validator[T]) cascadeMode() CascadeMode {
	if v.cascadeSet {
		return v.cascade
	}
	return DefaultCascadeMode()
}

// RunOption configures a single validation call.
type RunOption func(*runConfig)

type runConfig struct {
	ruleSets []string
	selector Selector
}

// WithRuleSets selects which rule sets run for this call. Without it only
// untagged rules run.
func WithRuleSets(names ...string) RunOption {
	return func(c *runConfig) { c.ruleSets = append(c.ruleSets, names...) }
}

// WithRunSelector replaces the selector for this call only.
func WithRunSelector(selector Selector) RunOption {
	return func(c *runConfig) {
		mustNotBeNil(selector, "selector")
		c.selector = selector
	}
}

func (v *Validator[T]) newContext(instance T, opts ...RunOption) *Context[T] {
	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	vc := NewContext(instance)
	vc.selected = cfg.ruleSets
	vc.selector = v.selector
	if cfg.selector != nil {
		vc.selector = cfg.selector
	}
	vc.cascade = v.cascadeMode()
	vc.logger = v.logger
	vc.prepared = true
	return vc
}

// prepareContext stamps the validator's selector, cascade mode and logger onto
// a caller-built context. Contexts built internally by Validate and
// ValidateAsync already carry them, including per-call run options.
func (v *Validator[T]) prepareContext(vc *Context[T]) {
	if vc.prepared {
		return
	}
	vc.selector = v.selector
	vc.cascade = v.cascadeMode()
	vc.logger = v.logger
	vc.prepared = true
}

// Validate runs every applicable rule against the instance synchronously, in
// registration order, and returns the aggregated result. Failures are data;
// the error return covers nil instances and predicate errors only.
func (v *Validator[T]) Validate(instance T, opts ...RunOption) (Result, error) {
	return v.ValidateContext(v.newContext(instance, opts...))
}

// ValidateContext drives the synchronous path over a caller-built context.
func (v *Validator[T]) ValidateContext(vc *Context[T]) (Result, error) {
	var result Result
	if vc == nil {
		return result, ErrNilContext
	}
	if isNilValue(vc.Instance()) {
		return result, ErrNilInstance
	}
	v.prepareContext(vc)
	if v.preValidate != nil && !v.preValidate(vc, &result) {
		return result, nil
	}

	for _, rule := range v.rules() {
		if !canExecuteRule(vc, rule) {
			vc.logger.Debug("rule skipped by selector", slog.Any("rule_sets", rule.RuleSets()))
			continue
		}
		failures, err := rule.Validate(vc)
		if err != nil {
			return Result{}, err
		}
		result.Append(failures...)
	}
	return result, nil
}

// ValidateAsync runs the same contract as Validate through the cooperative
// asynchronous path: rules still execute strictly one after another, but the
// context is checked for cancellation before each rule starts. A cancellation
// discards the partial result and returns ErrValidationCancelled.
func (v *Validator[T]) ValidateAsync(ctx context.Context, instance T, opts ...RunOption) (Result, error) {
	return v.ValidateContextAsync(ctx, v.newContext(instance, opts...))
}

// ValidateContextAsync drives the asynchronous path over a caller-built context.
func (v *Validator[T]) ValidateContextAsync(ctx context.Context, vc *Context[T]) (Result, error) {
	var result Result
	if vc == nil {
		return result, ErrNilContext
	}
	if isNilValue(vc.Instance()) {
		return result, ErrNilInstance
	}
	v.prepareContext(vc)
	if v.preValidate != nil && !v.preValidate(vc, &result) {
		return result, nil
	}

	vc.markAsync()

	for _, rule := range v.rules() {
		if err := ctx.Err(); err != nil {
			return Result{}, cancelledError(err)
		}
		if !canExecuteRule(vc, rule) {
			vc.logger.Debug("rule skipped by selector", slog.Any("rule_sets", rule.RuleSets()))
			continue
		}
		failures, err := rule.ValidateAsync(ctx, vc)
		if err != nil {
			return Result{}, err
		}
		result.Append(failures...)
	}
	return result, nil
}

// ValidateAny is the untyped entry point. An instance whose runtime type is
// not assignable to T fails with ErrIncompatibleType before any rule runs.
func (v *Validator[T]) ValidateAny(instance any, opts ...RunOption) (Result, error) {
	typed, err := v.assertType(instance)
	if err != nil {
		return Result{}, err
	}
	return v.Validate(typed, opts...)
}

// ValidateAnyAsync is the untyped asynchronous entry point.
func (v *Validator[T]) ValidateAnyAsync(ctx context.Context, instance any, opts ...RunOption) (Result, error) {
	typed, err := v.assertType(instance)
	if err != nil {
		return Result{}, err
	}
	return v.ValidateAsync(ctx, typed, opts...)
}

func (v *Validator[T]) assertType(instance any) (T, error) {
	var zero T
	if instance == nil {
		return zero, ErrNilInstance
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: cannot validate %T as %T", ErrIncompatibleType, instance, zero)
	}
	return typed, nil
}

// canExecuteRule applies the call's selector to one rule. Untagged include
// rules always execute: their inner rules apply the rule-set selection
// themselves.
func canExecuteRule[T any](vc *Context[T], rule Rule[T]) bool {
	if vc.canExecute(rule.RuleSets()) {
		return true
	}
	type includeMarker interface{ isIncludeRule() }
	if _, ok := any(rule).(includeMarker); ok && len(rule.RuleSets()) == 0 {
		return true
	}
	return false
}
