// Package defs holds a validator definition fixture. A sibling package with
// the same base name declares an identically named definition type, so the
// two types collide on reflect.Type.String while remaining distinct types.
package defs

import "github.com/dmitrymomot/fluentval"

// D defines the rules for positive integers.
type D struct{}

func (D) Define(v *fluentval.Validator[int]) {
	fluentval.RuleFor(v, "value", func(n int) int { return n }).
		Must(fluentval.GreaterThan(0)).WithMessage("{PropertyName} must be positive")
}
