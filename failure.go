package fluentval

import (
	"fmt"
	"strings"
)

// Severity classifies how serious a validation failure is. Rules produce
// SeverityError by default; warnings and infos are collected like any other
// failure but callers may choose to ignore them.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "error"
	}
}

// Failure describes a single rejected value with translation support.
// Failures are data, never raised: rules collect them into a Result.
type Failure struct {
	PropertyName      string
	Message           string
	Code              string
	Severity          Severity
	AttemptedValue    any
	TranslationKey    string
	TranslationValues map[string]any
}

// Result is the ordered outcome of one validation call. Failures appear in
// rule registration order, then within-rule step order; duplicates are
// preserved. An empty Result means the instance is valid.
type Result struct {
	failures []Failure
}

// Append adds failures to the result, silently dropping zero-value entries.
func (r *Result) Append(failures ...Failure) {
	for _, f := range failures {
		if f.isZero() {
			continue
		}
		r.failures = append(r.failures, f)
	}
}

func (f Failure) isZero() bool {
	return f.PropertyName == "" && f.Message == "" && f.Code == "" &&
		f.TranslationKey == "" && f.AttemptedValue == nil &&
		len(f.TranslationValues) == 0
}

// IsValid reports whether the result contains no failures.
func (r Result) IsValid() bool {
	return len(r.failures) == 0
}

// Failures returns the collected failures in order.
func (r Result) Failures() []Failure {
	return r.failures
}

func (r Result) Len() int {
	return len(r.failures)
}

// Has checks if a property has any failures.
func (r Result) Has(property string) bool {
	for _, f := range r.failures {
		if f.PropertyName == property {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for a property, in order.
func (r Result) Get(property string) []string {
	var messages []string
	for _, f := range r.failures {
		if f.PropertyName == property {
			messages = append(messages, f.Message)
		}
	}
	return messages
}

// Properties returns the distinct property names that failed, in first-seen order.
func (r Result) Properties() []string {
	var properties []string
	seen := make(map[string]bool)
	for _, f := range r.failures {
		if !seen[f.PropertyName] {
			properties = append(properties, f.PropertyName)
			seen[f.PropertyName] = true
		}
	}
	return properties
}

// Err returns the result as an error, or nil when the result is valid.
func (r Result) Err() error {
	if r.IsValid() {
		return nil
	}

	var parts []string
	for _, f := range r.failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.PropertyName, f.Message))
	}
	return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(parts, "; "))
}
