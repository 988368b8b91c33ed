package fluentval

import (
	"net/mail"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Numeric is the generic constraint used by the numeric predicates.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Predicate constructors for common checks, consumable by Must:
//
//	RuleFor(v, "email", ...).Must(fluentval.EmailAddress()).WithMessage("...")

// MinLength passes when the string has at least min bytes.
func MinLength(min int) func(string) bool {
	return func(value string) bool { return len(value) >= min }
}

// MaxLength passes when the string has at most max bytes.
func MaxLength(max int) func(string) bool {
	return func(value string) bool { return len(value) <= max }
}

// Length passes when the string has exactly n bytes.
func Length(n int) func(string) bool {
	return func(value string) bool { return len(value) == n }
}

// Matches passes when the string matches the pattern. The pattern is compiled
// once, at definition time; an invalid pattern panics there, never during
// rule execution.
func Matches(pattern string) func(string) bool {
	re := regexp.MustCompile(pattern)
	return func(value string) bool { return re.MatchString(value) }
}

// EmailAddress passes for RFC 5322 addresses restricted to typical web use:
// a single dotted domain, no display name.
func EmailAddress() func(string) bool {
	return func(value string) bool {
		if strings.TrimSpace(value) == "" {
			return false
		}
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return false
		}
		parts := strings.Split(addr.Address, "@")
		if len(parts) != 2 || parts[0] == "" {
			return false
		}
		domain := parts[1]
		return strings.Contains(domain, ".") &&
			!strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
	}
}

// ValidUUID passes for canonical 36-character UUIDs. Length and hyphen
// positions are checked before parsing to reject garbage cheaply.
func ValidUUID() func(string) bool {
	return func(value string) bool {
		if len(value) != 36 {
			return false
		}
		if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
			return false
		}
		_, err := uuid.Parse(value)
		return err == nil
	}
}

// InRange passes when min <= value <= max.
func InRange[N Numeric](min, max N) func(N) bool {
	return func(value N) bool { return value >= min && value <= max }
}

// GreaterThan passes when value > bound.
func GreaterThan[N Numeric](bound N) func(N) bool {
	return func(value N) bool { return value > bound }
}

// LessThan passes when value < bound.
func LessThan[N Numeric](bound N) func(N) bool {
	return func(value N) bool { return value < bound }
}

// OneOf passes when the value equals one of the allowed values.
func OneOf[P comparable](allowed ...P) func(P) bool {
	return func(value P) bool { return slices.Contains(allowed, value) }
}

// Not negates a predicate.
func Not[P any](pred func(P) bool) func(P) bool {
	mustNotBeNil(pred, "predicate")
	return func(value P) bool { return !pred(value) }
}
