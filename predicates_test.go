package fluentval_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fluentval"
)

func TestStringPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, fluentval.MinLength(3)("abc"))
	assert.False(t, fluentval.MinLength(3)("ab"))
	assert.True(t, fluentval.MaxLength(3)("abc"))
	assert.False(t, fluentval.MaxLength(3)("abcd"))
	assert.True(t, fluentval.Length(2)("ab"))
	assert.False(t, fluentval.Length(2)("a"))
	assert.True(t, fluentval.Matches(`^[a-z]+$`)("abc"))
	assert.False(t, fluentval.Matches(`^[a-z]+$`)("abc1"))
}

func TestEmailAddress(t *testing.T) {
	t.Parallel()

	valid := fluentval.EmailAddress()
	for _, email := range []string{
		"user@example.com",
		"first.last@sub.example.org",
		"user+tag@example.co",
	} {
		assert.True(t, valid(email), email)
	}

	for _, email := range []string{
		"",
		"   ",
		"plainaddress",
		"@example.com",
		"user@localhost",
		"user@.example.com",
		"User Name <user@example.com>",
	} {
		assert.False(t, valid(email), email)
	}
}

func TestValidUUID(t *testing.T) {
	t.Parallel()

	valid := fluentval.ValidUUID()
	assert.True(t, valid(uuid.NewString()))
	assert.True(t, valid("550e8400-e29b-41d4-a716-446655440000"))

	for _, value := range []string{
		"",
		"not-a-uuid",
		"550e8400e29b41d4a716446655440000",
		"550e8400-e29b-41d4-a716-44665544000",
		"zzze8400-e29b-41d4-a716-446655440000",
	} {
		assert.False(t, valid(value), value)
	}
}

func TestNumericPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, fluentval.InRange(1, 10)(5))
	assert.True(t, fluentval.InRange(1, 10)(1))
	assert.True(t, fluentval.InRange(1, 10)(10))
	assert.False(t, fluentval.InRange(1, 10)(0))
	assert.False(t, fluentval.InRange(1, 10)(11))

	assert.True(t, fluentval.GreaterThan(0.5)(0.6))
	assert.False(t, fluentval.GreaterThan(0.5)(0.5))
	assert.True(t, fluentval.LessThan(int64(100))(int64(99)))
	assert.False(t, fluentval.LessThan(int64(100))(int64(100)))
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	status := fluentval.OneOf("active", "suspended", "deleted")
	assert.True(t, status("active"))
	assert.False(t, status("unknown"))
}

func TestNot(t *testing.T) {
	t.Parallel()

	assert.False(t, fluentval.Not(fluentval.MinLength(3))("abc"))
	assert.True(t, fluentval.Not(fluentval.MinLength(3))("a"))
	assert.Panics(t, func() { fluentval.Not[string](nil) })
}
