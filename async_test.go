package fluentval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluentval"
)

func TestValidateAsync(t *testing.T) {
	t.Parallel()

	t.Run("same order and aggregation as the sync path", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		nameRule(v).Must(func(string) bool { return false }).WithMessage("first")
		nameRule(v).MustAsync(func(ctx context.Context, value string) (bool, error) {
			return false, nil
		}).WithMessage("second")
		nameRule(v).Must(func(string) bool { return false }).WithMessage("third")

		result, err := v.ValidateAsync(context.Background(), account{})
		require.NoError(t, err)
		require.Equal(t, 3, result.Len())
		assert.Equal(t, "first", result.Failures()[0].Message)
		assert.Equal(t, "second", result.Failures()[1].Message)
		assert.Equal(t, "third", result.Failures()[2].Message)
	})

	t.Run("pre-cancelled context abandons before any rule", func(t *testing.T) {
		t.Parallel()

		executed := false
		v := fluentval.New[account]()
		nameRule(v).Must(func(string) bool {
			executed = true
			return false
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := v.ValidateAsync(ctx, account{})
		require.ErrorIs(t, err, fluentval.ErrValidationCancelled)
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, executed)
	})

	t.Run("cancellation between rules discards partial results", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var ruleRuns []string

		v := fluentval.New[account]()
		nameRule(v).Must(func(string) bool {
			ruleRuns = append(ruleRuns, "rule1")
			cancel() // request cancellation before rule 2 starts
			return false
		})
		nameRule(v).Must(func(string) bool {
			ruleRuns = append(ruleRuns, "rule2")
			return false
		})
		nameRule(v).Must(func(string) bool {
			ruleRuns = append(ruleRuns, "rule3")
			return false
		})

		result, err := v.ValidateAsync(ctx, account{})
		require.ErrorIs(t, err, fluentval.ErrValidationCancelled)
		assert.Equal(t, []string{"rule1"}, ruleRuns, "cancellation takes effect at the next rule boundary")
		assert.Zero(t, result.Len(), "partial results are discarded, not returned")
	})

	t.Run("async flag is visible to rules", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		vc := fluentval.NewContext(account{Name: "ada"})
		nameRule(v).Must(func(string) bool { return vc.IsAsync() })

		syncResult, err := v.ValidateContext(vc)
		require.NoError(t, err)
		assert.Equal(t, 1, syncResult.Len(), "flag unset on the sync path")

		vcAsync := fluentval.NewContext(account{Name: "ada"})
		v2 := fluentval.New[account]()
		fluentval.RuleFor(v2, "name", func(a account) string { return a.Name }).
			Must(func(string) bool { return vcAsync.IsAsync() })

		asyncResult, err := v2.ValidateContextAsync(context.Background(), vcAsync)
		require.NoError(t, err)
		assert.True(t, asyncResult.IsValid(), "flag set before rule evaluation begins")
	})

	t.Run("async predicate error propagates and aborts", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		nameRule(v).MustAsync(func(ctx context.Context, value string) (bool, error) {
			return false, assert.AnError
		})

		_, err := v.ValidateAsync(context.Background(), account{})
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("sync path evaluates async steps to completion", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[account]()
		nameRule(v).MustAsync(func(ctx context.Context, value string) (bool, error) {
			return value != "", nil
		}).WithMessage("required")

		result, err := v.Validate(account{})
		require.NoError(t, err)
		assert.Equal(t, []string{"required"}, result.Get("name"))
	})

	t.Run("nil instance guard applies to the async path", func(t *testing.T) {
		t.Parallel()

		v := fluentval.New[*account]()
		_, err := v.ValidateAsync(context.Background(), nil)
		require.ErrorIs(t, err, fluentval.ErrNilInstance)
	})
}
