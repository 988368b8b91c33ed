package fluentval_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluentval"
)

func TestCustomSelector(t *testing.T) {
	t.Parallel()

	// A selector that ignores the requested sets and runs tagged rules only.
	taggedOnly := fluentval.SelectorFunc(func(ruleSets, selected []string) bool {
		return len(ruleSets) > 0
	})

	v := fluentval.New[account](fluentval.WithSelector[account](taggedOnly))
	nameRule(v).NotEmpty()
	v.RuleSet("audit", func() {
		fluentval.RuleFor(v, "email", func(a account) string { return a.Email }).NotEmpty()
	})

	result, err := v.Validate(account{})
	require.NoError(t, err)
	assert.Equal(t, []string{"email"}, result.Properties())
}

func TestRunSelectorOverridesValidatorSelector(t *testing.T) {
	t.Parallel()

	nothing := fluentval.SelectorFunc(func(ruleSets, selected []string) bool { return false })

	v := fluentval.New[account]()
	nameRule(v).NotEmpty()

	result, err := v.Validate(account{}, fluentval.WithRunSelector(nothing))
	require.NoError(t, err)
	assert.True(t, result.IsValid())
}

func TestSelectorReceivesRequestedSets(t *testing.T) {
	t.Parallel()

	var seen [][]string
	recorder := fluentval.SelectorFunc(func(ruleSets, selected []string) bool {
		seen = append(seen, slices.Clone(selected))
		return true
	})

	v := fluentval.New[account](fluentval.WithSelector[account](recorder))
	nameRule(v).NotEmpty()

	_, err := v.Validate(account{Name: "ada"}, fluentval.WithRuleSets("create", "audit"))
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, []string{"create", "audit"}, seen[0])
}
