package fluentval

import "errors"

// Errors returned by validation entry points. Definition-time misuse
// (nil predicates, nil bodies, empty rule-set names) panics instead:
// those are programming errors, not runtime conditions.
var (
	// ErrNilContext is returned when a validation context is missing.
	ErrNilContext = errors.New("validation context is nil")

	// ErrNilInstance is returned when the instance under validation is nil.
	ErrNilInstance = errors.New("instance to validate is nil")

	// ErrIncompatibleType is returned by the untyped entry points when the
	// runtime type of the instance does not match the validator's type.
	ErrIncompatibleType = errors.New("instance type is incompatible with validator")

	// ErrValidationCancelled is returned when an asynchronous validation run
	// observes a cancelled context at a rule boundary. Partial results are
	// discarded, never returned.
	ErrValidationCancelled = errors.New("validation cancelled")

	// ErrValidationFailed wraps failure summaries produced by Result.Err.
	ErrValidationFailed = errors.New("validation failed")
)

// cancelledError wraps a context error so callers can match both
// ErrValidationCancelled and the underlying context.Canceled or
// context.DeadlineExceeded via errors.Is.
func cancelledError(err error) error {
	return errors.Join(ErrValidationCancelled, err)
}
