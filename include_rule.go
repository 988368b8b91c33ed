package fluentval

import "context"

// includeRule embeds another validator's complete rule set as one composite
// rule. When executed it delegates to the included validator's rules against
// the same instance and context; from the engine's point of view it is a
// single rule, so its cascade policy never aborts sibling top-level rules.
// With StopOnFirstFailure the first failing included rule ends its own chain.
type includeRule[T any] struct {
	ruleBase[T]
	included *Validator[T]
}

func (r *includeRule[T]) isIncludeRule() {}

func (r *includeRule[T]) Validate(vc *Context[T]) ([]Failure, error) {
	return r.run(context.Background(), vc, false)
}

func (r *includeRule[T]) ValidateAsync(ctx context.Context, vc *Context[T]) ([]Failure, error) {
	return r.run(ctx, vc, true)
}

func (r *includeRule[T]) run(ctx context.Context, vc *Context[T], async bool) ([]Failure, error) {
	ok, err := r.conditionsPass(ctx, vc)
	if err != nil || !ok {
		return nil, err
	}

	// An included validator's own cascade override travels with it; without
	// one its rules inherit the outer call's mode.
	if r.included.cascadeSet {
		saved := vc.cascade
		vc.cascade = r.included.cascade
		defer func() { vc.cascade = saved }()
	}

	var failures []Failure
	for _, rule := range r.included.rules() {
		if async {
			if err := ctx.Err(); err != nil {
				return nil, cancelledError(err)
			}
		}
		if !canExecuteRule(vc, rule) {
			continue
		}

		var fs []Failure
		if async {
			fs, err = rule.ValidateAsync(ctx, vc)
		} else {
			fs, err = rule.Validate(vc)
		}
		if err != nil {
			return nil, err
		}
		failures = append(failures, fs...)

		if len(fs) > 0 && r.effectiveCascade(vc) == StopOnFirstFailure {
			break
		}
	}
	return failures, nil
}
