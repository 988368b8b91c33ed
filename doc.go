// Package fluentval is a declarative engine for composing and executing
// validation rules against instances of a data type. Rules are expressed as a
// fluent chain of predicates over typed property extractors; executing a
// validator produces an ordered list of failures instead of stopping at the
// first problem.
//
// # Architecture
//
// A Validator[T] owns an insertion-ordered rule registry. Rules come in three
// variants sharing one execution contract: property rules (one value per
// instance), collection rules (the chain runs per element with indexed
// failure paths), and include rules (another validator's rule set embedded as
// a single composite rule). Composition scopes — When, Unless, RuleSet and
// their async variants — capture the rules defined inside a block through a
// transient registry subscription and retroactively condition or tag them
// once the block completes.
//
// Validators built from a Definition type share a process-wide rule cache:
// the definition runs at most once per type regardless of how many instances
// are constructed concurrently, and each instance receives a copy of the
// cached snapshot. Ad-hoc rules added to an instance never enter the cache.
//
// # Execution
//
// Validate drives all applicable rules synchronously, in registration order.
// ValidateAsync follows the same order through a cooperative path: rules are
// never evaluated concurrently with each other, and the context is checked
// for cancellation before each rule starts; cancellation discards the partial
// result and returns ErrValidationCancelled. Failure order is therefore
// reproducible on both paths, and later rules may observe root-context data
// written by earlier ones.
//
// A rule's cascade mode (Continue or StopOnFirstFailure) governs only its own
// step chain; it never skips sibling rules. The validator-wide default is
// resolved lazily from the process configuration (FLUENTVAL_CASCADE) unless
// overridden per validator or per rule.
//
// # Usage
//
//	type User struct {
//	    Name  string
//	    Email string
//	    Tags  []string
//	}
//
//	v := fluentval.New[User]()
//	fluentval.RuleFor(v, "name", func(u User) string { return u.Name }).
//	    NotEmpty().
//	    Must(fluentval.MinLength(3)).WithMessage("{PropertyName} is too short")
//	fluentval.RuleFor(v, "email", func(u User) string { return u.Email }).
//	    Must(fluentval.EmailAddress())
//	fluentval.RuleForEach(v, "tags", func(u User) []string { return u.Tags }).
//	    NotEmpty()
//
//	result, err := v.Validate(User{Name: "ab"})
//	if err != nil {
//	    // nil instance, incompatible type, or a predicate error
//	}
//	for _, f := range result.Failures() {
//	    // f.PropertyName, f.Message, f.Code, f.Severity
//	}
//
// # Error Handling
//
// Business-rule failures are data collected into the Result, never raised.
// The error return of the entry points covers nil instances
// (ErrNilInstance), incompatible runtime types on the untyped entry points
// (ErrIncompatibleType), cancellation (ErrValidationCancelled) and errors
// returned by asynchronous predicates. Panics from user predicates propagate
// unmodified. Definition-time misuse — nil predicates, nil bodies, empty
// rule-set names — panics immediately.
//
// # Concurrency
//
// Rule definition must complete before the first validation call; after that
// a validator is safe for concurrent use because execution never mutates it.
// The rule cache is the only state shared across constructions and guarantees
// exactly-once builds per definition type.
package fluentval
