package kernel_test

import (
	"encoding/json"
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Run("should add and negate exactly", func(t *testing.T) {
		total := kernel.MoneyFromInt(20000).Add(kernel.MoneyFromInt(50000))

		assert.Equal(t, "70000", total.String())
		assert.Equal(t, "-70000", total.Neg().String())
		assert.True(t, total.Neg().IsNegative())
	})

	t.Run("should round half away from zero", func(t *testing.T) {
		share, err := kernel.MoneyFromString("29999.5")
		require.NoError(t, err)

		assert.Equal(t, "30000", share.Round(0).String())
	})

	t.Run("should compare by value", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("1.50")
		b, _ := kernel.MoneyFromString("1.5")

		assert.True(t, a.Equal(b))
		assert.Equal(t, 0, a.Cmp(b))
	})

	t.Run("should sum a list", func(t *testing.T) {
		sum := kernel.SumMoney(kernel.MoneyFromInt(30000), kernel.MoneyFromInt(20000), kernel.MoneyFromInt(9999))

		assert.Equal(t, "59999", sum.String())
	})

	t.Run("should treat zero value as zero", func(t *testing.T) {
		var m kernel.Money

		assert.True(t, m.IsZero())
		assert.True(t, m.Add(kernel.MoneyFromInt(5)).Equal(kernel.MoneyFromInt(5)))
	})

	t.Run("should reject negative where forbidden", func(t *testing.T) {
		err := kernel.MoneyFromInt(-1).ValidateNonNegative("codAmount")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject malformed strings", func(t *testing.T) {
		_, err := kernel.MoneyFromString("12,5")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should encode json as string and accept numbers", func(t *testing.T) {
		b, err := json.Marshal(kernel.MoneyFromInt(50000))
		require.NoError(t, err)
		assert.JSONEq(t, `"50000"`, string(b))

		var fromNumber, fromString kernel.Money
		require.NoError(t, json.Unmarshal([]byte(`19999.67`), &fromNumber))
		require.NoError(t, json.Unmarshal([]byte(`"19999.67"`), &fromString))
		assert.True(t, fromNumber.Equal(fromString))
	})
}
