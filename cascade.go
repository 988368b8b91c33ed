package fluentval

import "fmt"

// CascadeMode controls how a single rule's step chain reacts to a failing
// step. It never affects sibling rules: a rule that stops early does not
// prevent later rules from running.
type CascadeMode int

const (
	// Continue evaluates every step in the chain regardless of earlier failures.
	Continue CascadeMode = iota

	// StopOnFirstFailure stops the rule's chain at its first failing step.
	StopOnFirstFailure
)

func (m CascadeMode) String() string {
	switch m {
	case StopOnFirstFailure:
		return "stop_on_first_failure"
	default:
		return "continue"
	}
}

// ParseCascadeMode parses the string form used in environment configuration.
func ParseCascadeMode(s string) (CascadeMode, error) {
	switch s {
	case "continue", "":
		return Continue, nil
	case "stop_on_first_failure", "stop":
		return StopOnFirstFailure, nil
	default:
		return Continue, fmt.Errorf("unknown cascade mode %q", s)
	}
}
