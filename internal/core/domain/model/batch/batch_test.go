package batch_test

import (
	"testing"

	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitted returns InBatch records of one courier with the given system and actual amounts.
func submitted(t *testing.T, courierID kernel.UUID, pairs ...[2]int64) []*collection.Submission {
	t.Helper()

	records := make([]*collection.Submission, 0, len(pairs))
	for _, p := range pairs {
		r, err := collection.NewSubmission(kernel.NewUUID(), kernel.NewCode("PS"), kernel.NewUUID(), courierID,
			collection.KindCOD, kernel.MoneyFromInt(p[0]), kernel.MoneyFromInt(p[0]), "")
		require.NoError(t, err)
		require.NoError(t, r.SubmitActual(kernel.MoneyFromInt(p[1])))
		records = append(records, r)
	}
	return records
}

func newBatch(t *testing.T, pairs ...[2]int64) (*batch.Batch, []*collection.Submission) {
	t.Helper()

	courier := kernel.NewUUID()
	records := submitted(t, courier, pairs...)
	b, err := batch.NewBatch(kernel.NewUUID(), kernel.NewCode("BAT"), courier, records, "")
	require.NoError(t, err)
	return b, records
}

func TestNewBatch(t *testing.T) {
	t.Run("should sum member totals and attach members", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{30000, 30000}, [2]int64{20000, 20000}, [2]int64{10000, 9999})

		assert.Equal(t, batch.Pending, b.Status())
		assert.Equal(t, "60000", b.TotalSystem().String())
		assert.Equal(t, "59999", b.TotalActual().String())
		for _, r := range records {
			require.NotNil(t, r.BatchID())
			assert.True(t, r.BatchID().IsEqual(b.ID()))
		}
	})

	t.Run("should fail on empty selection", func(t *testing.T) {
		_, err := batch.NewBatch(kernel.NewUUID(), "BAT-1", kernel.NewUUID(), nil, "")

		require.ErrorIs(t, err, errs.ErrEmptySelection)
	})

	t.Run("should refuse records of another courier", func(t *testing.T) {
		records := submitted(t, kernel.NewUUID(), [2]int64{100, 100})

		_, err := batch.NewBatch(kernel.NewUUID(), "BAT-1", kernel.NewUUID(), records, "")

		require.ErrorIs(t, err, errs.ErrInconsistentState)
	})

	t.Run("should refuse records still pending", func(t *testing.T) {
		courier := kernel.NewUUID()
		r, err := collection.NewSubmission(kernel.NewUUID(), "PS-1", kernel.NewUUID(), courier,
			collection.KindFee, kernel.MoneyFromInt(100), kernel.MoneyFromInt(100), "")
		require.NoError(t, err)

		_, err = batch.NewBatch(kernel.NewUUID(), "BAT-1", courier, []*collection.Submission{r}, "")

		require.ErrorIs(t, err, errs.ErrInconsistentState)
	})
}

func TestBatch_Complete(t *testing.T) {
	reconciler := kernel.NewUUID()

	t.Run("should complete and match every member when totals agree", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{30000, 30000}, [2]int64{20000, 20000})
		require.NoError(t, b.StartChecking(reconciler, nil))

		out, err := b.Complete(reconciler, records)

		require.NoError(t, err)
		assert.Equal(t, batch.Completed, out.Status)
		assert.False(t, out.AmountMismatch)
		for _, r := range records {
			assert.Equal(t, collection.Matched, r.Status())
		}
		require.NotNil(t, b.CheckedBy())
		assert.True(t, b.CheckedBy().IsEqual(reconciler))
	})

	t.Run("should go partial and flag only members with their own discrepancy", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{30000, 30000}, [2]int64{20000, 20000}, [2]int64{10000, 9999})
		require.NoError(t, b.StartChecking(reconciler, nil))

		out, err := b.Complete(reconciler, records)

		require.NoError(t, err)
		assert.Equal(t, batch.Partial, out.Status)
		assert.True(t, out.AmountMismatch)
		assert.Equal(t, "-1", out.Discrepancy.String())
		assert.Equal(t, []kernel.UUID{records[2].ID()}, out.Mismatched)
		assert.Equal(t, collection.Matched, records[0].Status())
		assert.Equal(t, collection.Mismatched, records[2].Status())
	})

	t.Run("should complete partial batch after adjustment", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{10000, 9999})
		require.NoError(t, b.StartChecking(reconciler, nil))
		_, err := b.Complete(reconciler, records)
		require.NoError(t, err)

		_, err = b.Complete(reconciler, records)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.False(t, b.IsSettleable(records))

		require.NoError(t, records[0].Adjust(kernel.MoneyFromInt(10000), ""))
		assert.True(t, b.IsSettleable(records))
		out, err := b.Complete(reconciler, records)

		require.NoError(t, err)
		assert.Equal(t, batch.Completed, out.Status)
	})

	t.Run("should be a no-op on a completed batch", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{500, 500})
		require.NoError(t, b.StartChecking(reconciler, nil))
		_, err := b.Complete(reconciler, records)
		require.NoError(t, err)
		before := b.Snapshot()

		out, err := b.Complete(kernel.NewUUID(), records)

		require.NoError(t, err)
		assert.True(t, out.Unchanged)
		assert.Equal(t, before, b.Snapshot())
	})

	t.Run("should refuse pending batch", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{500, 500})

		_, err := b.Complete(reconciler, records)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should flag every member when the counted total disagrees with the records", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{60000, 60000}, [2]int64{30000, 30000})
		confirmed := kernel.MoneyFromInt(85000)
		require.NoError(t, b.StartChecking(reconciler, &confirmed))

		out, err := b.Complete(reconciler, records)

		require.NoError(t, err)
		assert.Equal(t, batch.Partial, out.Status)
		assert.Equal(t, "-5000", out.Discrepancy.String())
		assert.Equal(t, []kernel.UUID{records[0].ID(), records[1].ID()}, out.Mismatched)
		assert.False(t, b.IsSettleable(records))
	})

	t.Run("should not complete until adjusted records add up to the counted total", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{60000, 60000}, [2]int64{30000, 30000})
		confirmed := kernel.MoneyFromInt(85000)
		require.NoError(t, b.StartChecking(reconciler, &confirmed))
		_, err := b.Complete(reconciler, records)
		require.NoError(t, err)

		require.NoError(t, records[0].Adjust(kernel.MoneyFromInt(60000), ""))
		require.NoError(t, records[1].Adjust(kernel.MoneyFromInt(30000), "recount"))
		assert.False(t, b.IsSettleable(records))
		_, err = b.Complete(reconciler, records)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, batch.Partial, b.Status())
	})

	t.Run("should complete once the shortfall is assigned to a record", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{60000, 60000}, [2]int64{30000, 30000})
		confirmed := kernel.MoneyFromInt(85000)
		require.NoError(t, b.StartChecking(reconciler, &confirmed))
		_, err := b.Complete(reconciler, records)
		require.NoError(t, err)

		require.NoError(t, records[0].Adjust(kernel.MoneyFromInt(60000), ""))
		require.NoError(t, records[1].Adjust(kernel.MoneyFromInt(25000), "short 5000"))
		assert.True(t, b.IsSettleable(records))
		out, err := b.Complete(reconciler, records)

		require.NoError(t, err)
		assert.Equal(t, batch.Completed, out.Status)
		assert.Equal(t, "-5000", out.Discrepancy.String())
	})

	t.Run("should refuse a foreign member list", func(t *testing.T) {
		b, _ := newBatch(t, [2]int64{500, 500})
		require.NoError(t, b.StartChecking(reconciler, nil))

		_, err := b.Complete(reconciler, submitted(t, b.CourierID(), [2]int64{500, 500}))

		require.ErrorIs(t, err, errs.ErrInconsistentState)
	})
}

func TestBatch_Cancel(t *testing.T) {
	t.Run("should release members", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{500, 500})

		require.NoError(t, b.Cancel(kernel.NewUUID(), records))

		assert.Equal(t, batch.Cancelled, b.Status())
		assert.Nil(t, records[0].BatchID())
		assert.Equal(t, collection.InBatch, records[0].Status())
	})

	t.Run("should not cancel once checking", func(t *testing.T) {
		b, records := newBatch(t, [2]int64{500, 500})
		require.NoError(t, b.StartChecking(kernel.NewUUID(), nil))

		require.ErrorIs(t, b.Cancel(kernel.NewUUID(), records), errs.ErrInvalidTransition)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, batch.Pending.CanTransitionTo(batch.Checking))
	assert.True(t, batch.Partial.CanTransitionTo(batch.Completed))
	assert.False(t, batch.Pending.CanTransitionTo(batch.Completed))
	assert.False(t, batch.Completed.CanTransitionTo(batch.Partial))
}
