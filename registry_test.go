package fluentval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluentval"
)

type account struct {
	Name    string
	Email   string
	Age     int
	Premium bool
	Tags    []string
}

func nameRule(v *fluentval.Validator[account]) *fluentval.RuleBuilder[account, string] {
	return fluentval.RuleFor(v, "name", func(a account) string { return a.Name })
}

func TestRuleRegistrationOrder(t *testing.T) {
	t.Parallel()

	v := fluentval.New[account]()
	nameRule(v).Must(func(string) bool { return false }).WithMessage("first")
	fluentval.RuleFor(v, "email", func(a account) string { return a.Email }).
		Must(func(string) bool { return false }).WithMessage("second")
	nameRule(v).Must(func(string) bool { return false }).WithMessage("third")

	result, err := v.Validate(account{})
	require.NoError(t, err)
	require.Equal(t, 3, result.Len())

	messages := []string{
		result.Failures()[0].Message,
		result.Failures()[1].Message,
		result.Failures()[2].Message,
	}
	assert.Equal(t, []string{"first", "second", "third"}, messages)
}

func TestRegistrySubscriptionScopes(t *testing.T) {
	t.Parallel()

	t.Run("nested scopes both capture additions", func(t *testing.T) {
		v := fluentval.New[account]()

		var outer, inner int
		v.When(func(account) bool { return true }, func() {
			nameRule(v).NotEmpty()
			v.RuleSet("extra", func() {
				nameRule(v).NotEmpty()
				inner++
			})
			outer++
		})

		require.Len(t, v.Rules(), 2)
		// Outer When conditioned both rules; inner RuleSet tagged only the second.
		assert.Empty(t, v.Rules()[0].RuleSets())
		assert.Equal(t, []string{"extra"}, v.Rules()[1].RuleSets())
	})

	t.Run("subscription released after panic in block", func(t *testing.T) {
		v := fluentval.New[account]()

		require.Panics(t, func() {
			v.When(func(account) bool { return false }, func() {
				panic("boom")
			})
		})

		// A rule added after the failed scope must not pick up its condition.
		nameRule(v).Must(func(string) bool { return false })
		result, err := v.Validate(account{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Len())
	})
}

func TestRulesSnapshotIsCopy(t *testing.T) {
	t.Parallel()

	v := fluentval.New[account]()
	nameRule(v).NotEmpty()

	rules := v.Rules()
	rules[0] = nil

	require.NotNil(t, v.Rules()[0])
}
