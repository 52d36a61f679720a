package collection_test

import (
	"testing"

	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCOD(t *testing.T, system int64) *collection.Submission {
	t.Helper()

	amount := kernel.MoneyFromInt(system)
	s, err := collection.NewSubmission(kernel.NewUUID(), kernel.NewCode("PS"), kernel.NewUUID(), kernel.NewUUID(),
		collection.KindCOD, amount, amount, "")
	require.NoError(t, err)
	return s
}

func TestNewSubmission(t *testing.T) {
	t.Run("should start pending with zero discrepancy", func(t *testing.T) {
		s := newCOD(t, 50000)

		require.NoError(t, s.Validate())
		assert.Equal(t, collection.Pending, s.Status())
		assert.True(t, s.Discrepancy().IsZero())
		assert.NotNil(t, s.PaidAt())
	})

	t.Run("should not open refund records", func(t *testing.T) {
		_, err := collection.NewSubmission(kernel.NewUUID(), "PS-1", kernel.NewUUID(), kernel.NewUUID(),
			collection.KindRefund, kernel.MoneyFromInt(1), kernel.MoneyFromInt(1), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := collection.NewSubmission(kernel.NewUUID(), "PS-1", kernel.NewUUID(), kernel.NewUUID(),
			collection.KindFee, kernel.MoneyFromInt(-5), kernel.ZeroMoney(), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewRefund(t *testing.T) {
	t.Run("should negate collected total and be adjusted", func(t *testing.T) {
		r, err := collection.NewRefund(kernel.NewUUID(), "PS-R", kernel.NewUUID(), kernel.NewUUID(),
			kernel.MoneyFromInt(50000), "returned")

		require.NoError(t, err)
		assert.True(t, r.IsRefund())
		assert.Equal(t, collection.Adjusted, r.Status())
		assert.Equal(t, "-50000", r.SystemAmount().String())
		assert.Equal(t, "-50000", r.ActualAmount().String())
	})

	t.Run("should need a positive total", func(t *testing.T) {
		_, err := collection.NewRefund(kernel.NewUUID(), "PS-R", kernel.NewUUID(), kernel.NewUUID(),
			kernel.ZeroMoney(), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSubmission_Reconciliation(t *testing.T) {
	t.Run("should walk pending to mismatched to adjusted", func(t *testing.T) {
		s := newCOD(t, 10000)
		batchID := kernel.NewUUID()

		require.NoError(t, s.SubmitActual(kernel.MoneyFromInt(9999)))
		require.NoError(t, s.AttachTo(batchID))
		require.NoError(t, s.Settle(false))
		assert.Equal(t, "-1", s.Discrepancy().String())

		require.NoError(t, s.Adjust(kernel.MoneyFromInt(10000), "recount"))
		assert.Equal(t, collection.Adjusted, s.Status())
		assert.True(t, s.Discrepancy().IsZero())
		assert.Equal(t, "recount", s.Notes())
	})

	t.Run("should freeze actual once attached", func(t *testing.T) {
		s := newCOD(t, 10000)
		require.NoError(t, s.SubmitActual(kernel.MoneyFromInt(10000)))
		require.NoError(t, s.AttachTo(kernel.NewUUID()))

		require.ErrorIs(t, s.SubmitActual(kernel.MoneyFromInt(1)), errs.ErrInvalidTransition)
	})

	t.Run("should rejoin after detach", func(t *testing.T) {
		s := newCOD(t, 10000)
		require.NoError(t, s.SubmitActual(kernel.MoneyFromInt(10000)))
		require.NoError(t, s.AttachTo(kernel.NewUUID()))

		s.Detach()

		assert.Nil(t, s.BatchID())
		assert.Equal(t, collection.InBatch, s.Status())
		require.NoError(t, s.AttachTo(kernel.NewUUID()))
	})

	t.Run("should only adjust mismatched records", func(t *testing.T) {
		s := newCOD(t, 10000)

		require.ErrorIs(t, s.Adjust(kernel.MoneyFromInt(1), ""), errs.ErrInvalidTransition)
	})

	t.Run("should not settle pending records", func(t *testing.T) {
		s := newCOD(t, 10000)

		require.ErrorIs(t, s.Settle(true), errs.ErrInvalidTransition)
	})
}

func TestRestoreSubmission(t *testing.T) {
	s := newCOD(t, 10000)
	require.NoError(t, s.SubmitActual(kernel.MoneyFromInt(8000)))

	restored, err := collection.RestoreSubmission(s.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}
