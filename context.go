package fluentval

import (
	"fmt"
	"log/slog"
	"strings"
)

// asyncRunKey marks an asynchronous execution in the shared root data, visible
// to any rule or condition that branches on execution mode.
const asyncRunKey = "__fluentval_async"

// Context carries the per-call validation state: the instance under test, the
// property-path accumulator used by nested and collection rules, shared root
// data that rules may read and write, and the rule-set selection. A Context
// is owned by a single validation call and must not be shared across calls.
type Context[T any] struct {
	instance      T
	propertyChain []string
	rootData      map[string]any
	selected      []string
	selector      Selector
	cascade       CascadeMode
	logger        *slog.Logger

	// prepared marks a context already configured by the validator that owns
	// the call. Caller-built contexts carry process-wide defaults only; the
	// engine stamps the validator's settings onto them on entry.
	prepared bool
}

// NewContext builds a call-local context for the given instance. Most callers
// never construct one directly; Validate and ValidateAsync do it internally.
func NewContext[T any](instance T) *Context[T] {
	return &Context[T]{
		instance: instance,
		rootData: make(map[string]any),
		selector: defaultSelector{},
		cascade:  DefaultCascadeMode(),
		logger:   slog.New(slog.DiscardHandler),
	}
}

// Instance returns the value under validation.
func (c *Context[T]) Instance() T {
	return c.instance
}

// RootData returns the mutable map shared by every rule in this call. Later
// rules observe mutations made by earlier ones; this is guaranteed by the
// strictly sequential rule execution order.
func (c *Context[T]) RootData() map[string]any {
	return c.rootData
}

// IsAsync reports whether this call entered through the asynchronous path.
func (c *Context[T]) IsAsync() bool {
	async, _ := c.rootData[asyncRunKey].(bool)
	return async
}

// SelectedRuleSets returns the rule sets requested for this call.
func (c *Context[T]) SelectedRuleSets() []string {
	return c.selected
}

// PropertyPath joins the accumulated property chain with the given leaf name.
func (c *Context[T]) PropertyPath(name string) string {
	if len(c.propertyChain) == 0 {
		return name
	}
	if name == "" {
		return strings.Join(c.propertyChain, ".")
	}
	return strings.Join(c.propertyChain, ".") + "." + name
}

// IndexedPropertyPath renders a collection element path such as "items[2]".
func (c *Context[T]) IndexedPropertyPath(name string, index int) string {
	return fmt.Sprintf("%s[%d]", c.PropertyPath(name), index)
}

func (c *Context[T]) markAsync() {
	c.rootData[asyncRunKey] = true
}

func (c *Context[T]) canExecute(ruleSets []string) bool {
	return c.selector.CanExecute(ruleSets, c.selected)
}
