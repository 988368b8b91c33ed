package fluentval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluentval"
)

func tagsRule(v *fluentval.Validator[account]) *fluentval.CollectionRuleBuilder[account, string] {
	return fluentval.RuleForEach(v, "tags", func(a account) []string { return a.Tags })
}

func TestCollectionRule(t *testing.T) {
	t.Parallel()

	t.Run("failures carry indexed property paths", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		tagsRule(v).NotEmpty()

		result, err := v.Validate(account{Tags: []string{"go", "", "validation", ""}})
		require.NoError(t, err)
		require.Equal(t, 2, result.Len())
		assert.Equal(t, "tags[1]", result.Failures()[0].PropertyName)
		assert.Equal(t, "tags[3]", result.Failures()[1].PropertyName)
	})

	t.Run("empty collection produces no failures", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		tagsRule(v).NotEmpty()

		result, err := v.Validate(account{})
		require.NoError(t, err)
		assert.True(t, result.IsValid())
	})

	t.Run("where filters elements but keeps original indexes", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		tagsRule(v).
			Where(func(tag string) bool { return strings.HasPrefix(tag, "x-") }).
			Must(fluentval.MinLength(4)).WithMessage("{PropertyName} is too short")

		result, err := v.Validate(account{Tags: []string{"ok", "x-1", "x-long-enough"}})
		require.NoError(t, err)
		require.Equal(t, 1, result.Len())
		assert.Equal(t, "tags[1]", result.Failures()[0].PropertyName)
	})

	t.Run("stop on first failure ends the whole rule", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		tagsRule(v).
			Cascade(fluentval.StopOnFirstFailure).
			NotEmpty()

		result, err := v.Validate(account{Tags: []string{"", "", ""}})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Len())
	})

	t.Run("rule-level condition gates all elements", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		tagsRule(v).
			NotEmpty().
			When(func(a account) bool { return a.Premium })

		result, err := v.Validate(account{Tags: []string{""}})
		require.NoError(t, err)
		assert.True(t, result.IsValid())
	})
}
