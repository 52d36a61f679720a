package services_test

import (
	"math/rand"
	"testing"

	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(values ...int64) []kernel.Money {
	out := make([]kernel.Money, 0, len(values))
	for _, v := range values {
		out = append(out, kernel.MoneyFromInt(v))
	}
	return out
}

func TestCashApportioner_Apportion(t *testing.T) {
	t.Run("should round shares and let the last absorb the remainder", func(t *testing.T) {
		shares, err := services.NewCashApportioner(0).Apportion(kernel.MoneyFromInt(59999), money(30000, 20000, 10000))

		require.NoError(t, err)
		assert.Equal(t, []string{"30000", "20000", "9999"}, amounts(shares))
	})

	t.Run("should honour a decimal scale", func(t *testing.T) {
		shares, err := services.NewCashApportioner(2).Apportion(kernel.MoneyFromInt(100), money(1, 1, 1))

		require.NoError(t, err)
		assert.Equal(t, []string{"33.33", "33.33", "33.34"}, amounts(shares))
	})

	t.Run("should give everything to the last record when weights are zero", func(t *testing.T) {
		shares, err := services.NewCashApportioner(0).Apportion(kernel.MoneyFromInt(500), money(0, 0))

		require.NoError(t, err)
		assert.Equal(t, []string{"0", "500"}, amounts(shares))
	})

	t.Run("should never leave a negative remainder", func(t *testing.T) {
		shares, err := services.NewCashApportioner(0).Apportion(kernel.MoneyFromInt(1), money(1, 1, 0))

		require.NoError(t, err)
		for _, s := range shares {
			assert.False(t, s.IsNegative())
		}
		assert.Equal(t, "1", kernel.SumMoney(shares...).String())
	})

	t.Run("should fail without records", func(t *testing.T) {
		_, err := services.NewCashApportioner(0).Apportion(kernel.MoneyFromInt(1), nil)

		require.ErrorIs(t, err, errs.ErrNoEligibleRecords)
	})

	t.Run("should preserve the total for random inputs", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		a := services.NewCashApportioner(0)

		for range 200 {
			n := 1 + rng.Intn(8)
			weights := make([]int64, n)
			for i := range weights {
				weights[i] = rng.Int63n(100000)
			}
			total := kernel.MoneyFromInt(rng.Int63n(500000))

			shares, err := a.Apportion(total, money(weights...))

			require.NoError(t, err)
			require.Len(t, shares, n)
			assert.True(t, kernel.SumMoney(shares...).Equal(total), "weights %v total %s", weights, total)
		}
	})
}

func TestCashApportioner_Submit(t *testing.T) {
	t.Run("should move records to in batch with their share", func(t *testing.T) {
		courier := kernel.NewUUID()
		var records []*collection.Submission
		for _, v := range []int64{30000, 20000, 10000} {
			r, err := collection.NewSubmission(kernel.NewUUID(), kernel.NewCode("PS"), kernel.NewUUID(), courier,
				collection.KindCOD, kernel.MoneyFromInt(v), kernel.MoneyFromInt(v), "")
			require.NoError(t, err)
			records = append(records, r)
		}

		require.NoError(t, services.NewCashApportioner(0).Submit(records, kernel.MoneyFromInt(59999)))

		assert.Equal(t, "9999", records[2].ActualAmount().String())
		for _, r := range records {
			assert.Equal(t, collection.InBatch, r.Status())
		}
	})
}

func amounts(values []kernel.Money) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}
