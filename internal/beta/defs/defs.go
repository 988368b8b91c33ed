// Package defs mirrors its alpha sibling: the same package base name and the
// same definition type name, targeting a different instance type.
package defs

import "github.com/dmitrymomot/fluentval"

// D defines the rules for non-empty strings.
type D struct{}

func (D) Define(v *fluentval.Validator[string]) {
	fluentval.RuleFor(v, "value", func(s string) string { return s }).
		NotEmpty()
}
