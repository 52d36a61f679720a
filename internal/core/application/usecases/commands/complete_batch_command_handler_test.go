package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cashRun struct {
	courier  kernel.Actor
	orderIDs []kernel.UUID
	records  []kernel.UUID
	batchID  kernel.UUID
}

// submittedBatch collects COD for each amount, submits handedOver and puts
// the records into a new pending batch.
func (e env) submittedBatch(t *testing.T, handedOver int64, cods ...int64) cashRun {
	t.Helper()

	run := cashRun{courier: courierAt(kernel.NewUUID())}
	for _, cod := range cods {
		o := e.deliveringOrder(t, run.courier, parcel{cod: cod})
		run.orderIDs = append(run.orderIDs, o.ID())
		run.records = append(run.records, e.collect(t, run.courier, o.ID()))
	}

	submit, err := commands.NewSubmitForBatchingCommand(run.courier, run.courier.ID, run.records, kernel.MoneyFromInt(handedOver))
	require.NoError(t, err)
	require.NoError(t, commands.NewSubmitForBatchingCommandHandler(e.ledger(), 0).Handle(t.Context(), submit))

	run.batchID = kernel.NewUUID()
	create, err := commands.NewCreateBatchCommand(accountant(), run.batchID, run.courier.ID, run.records, "evening run")
	require.NoError(t, err)
	require.NoError(t, commands.NewCreateBatchCommandHandler(e.batches()).Handle(t.Context(), create))
	return run
}

func (e env) startChecking(t *testing.T, batchID kernel.UUID, confirmed *kernel.Money) {
	t.Helper()

	cmd, err := commands.NewStartCheckingCommand(accountant(), batchID, confirmed)
	require.NoError(t, err)
	require.NoError(t, commands.NewStartCheckingCommandHandler(e.batches()).Handle(t.Context(), cmd))
}

func TestCreateBatchCommandHandler_Handle(t *testing.T) {
	e := newEnv(t)
	run := e.submittedBatch(t, 90000, 60000, 30000)

	b := e.batch(t, run.batchID)
	assert.Equal(t, batch.Pending, b.Status())
	assert.Equal(t, run.courier.ID, b.CourierID())
	assert.True(t, b.TotalSystem().Equal(kernel.MoneyFromInt(90000)))
	assert.True(t, b.TotalActual().Equal(kernel.MoneyFromInt(90000)))
	assert.ElementsMatch(t, run.records, b.MemberIDs())

	for _, id := range run.records {
		r := e.record(t, id)
		require.NotNil(t, r.BatchID())
		assert.Equal(t, run.batchID, *r.BatchID())
	}

	// records already in a batch cannot form another one
	cmd, err := commands.NewCreateBatchCommand(accountant(), kernel.NewUUID(), run.courier.ID, run.records, "")
	require.NoError(t, err)
	err = commands.NewCreateBatchCommandHandler(e.batches()).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrEmptySelection)
}

func TestCreateBatchCommandHandler_Handle_CourierRejected(t *testing.T) {
	courier := courierAt(kernel.NewUUID())
	cmd, err := commands.NewCreateBatchCommand(courier, kernel.NewUUID(), courier.ID, []kernel.UUID{kernel.NewUUID()}, "")
	require.NoError(t, err)

	err = commands.NewCreateBatchCommandHandler(newEnv(t).batches()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestCompleteBatchCommandHandler_Handle_EqualTotals(t *testing.T) {
	e := newEnv(t)
	run := e.submittedBatch(t, 90000, 60000, 30000)
	e.startChecking(t, run.batchID, nil)

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notice) bool {
		return n.EventType == "batch_completed" && n.UserID == run.courier.ID
	})).Return(nil).Once()
	h := commands.NewCompleteBatchCommandHandler(e.batches(), commands.NewNoticeSender(notifier, nil))

	cmd, err := commands.NewCompleteBatchCommand(accountant(), run.batchID)
	require.NoError(t, err)
	outcome, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, batch.Completed, outcome.Status)
	assert.False(t, outcome.AmountMismatch)
	assert.Equal(t, batch.Completed, e.batch(t, run.batchID).Status())
	for _, id := range run.records {
		assert.Equal(t, collection.Matched, e.record(t, id).Status())
	}
	for _, id := range run.orderIDs {
		assert.Equal(t, order.CODCollected, e.order(t, id).CODStatus())
	}

	// completing again is a no-op and sends nothing
	outcome, err = h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.True(t, outcome.Unchanged)
	notifier.AssertExpectations(t)
}

func TestCompleteBatchCommandHandler_Handle_PartialThenSettled(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	run := e.submittedBatch(t, 90000, 60000, 40000)
	e.startChecking(t, run.batchID, nil)

	complete, err := commands.NewCompleteBatchCommand(accountant(), run.batchID)
	require.NoError(t, err)
	h := commands.NewCompleteBatchCommandHandler(e.batches(), silent)

	outcome, err := h.Handle(ctx, complete)
	require.NoError(t, err)
	assert.Equal(t, batch.Partial, outcome.Status)
	assert.True(t, outcome.AmountMismatch)
	assert.True(t, outcome.Discrepancy.Equal(kernel.MoneyFromInt(-10000)))
	assert.ElementsMatch(t, run.records, outcome.Mismatched)
	assert.Equal(t, order.CODPending, e.order(t, run.orderIDs[0]).CODStatus(), "cash not confirmed yet")

	// a partial batch cannot complete while mismatches remain
	_, err = h.Handle(ctx, complete)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	for _, id := range run.records {
		r := e.record(t, id)
		adjust, err := commands.NewAdjustRecordCommand(accountant(), id, r.ActualAmount(), "courier short")
		require.NoError(t, err)
		require.NoError(t, commands.NewAdjustRecordCommandHandler(e.ledger()).Handle(ctx, adjust))
		assert.Equal(t, collection.Adjusted, e.record(t, id).Status())
	}

	outcome, err = h.Handle(ctx, complete)
	require.NoError(t, err)
	assert.Equal(t, batch.Completed, outcome.Status)
	for _, id := range run.orderIDs {
		assert.Equal(t, order.CODCollected, e.order(t, id).CODStatus())
	}
}

func TestStartCheckingCommandHandler_Handle_ConfirmedActual(t *testing.T) {
	e := newEnv(t)
	run := e.submittedBatch(t, 90000, 60000, 30000)

	e.startChecking(t, run.batchID, money(85000))

	b := e.batch(t, run.batchID)
	assert.Equal(t, batch.Checking, b.Status())
	assert.True(t, b.TotalActual().Equal(kernel.MoneyFromInt(85000)))
	assert.True(t, b.Discrepancy().Equal(kernel.MoneyFromInt(-5000)))

	cmd, err := commands.NewStartCheckingCommand(accountant(), run.batchID, nil)
	require.NoError(t, err)
	err = commands.NewStartCheckingCommandHandler(e.batches()).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestCompleteBatchCommandHandler_Handle_CountedShortOfRecords(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	run := e.submittedBatch(t, 90000, 60000, 30000)
	e.startChecking(t, run.batchID, money(85000))

	complete, err := commands.NewCompleteBatchCommand(accountant(), run.batchID)
	require.NoError(t, err)
	outcome, err := commands.NewCompleteBatchCommandHandler(e.batches(), silent).Handle(ctx, complete)

	require.NoError(t, err)
	assert.Equal(t, batch.Partial, outcome.Status)
	assert.ElementsMatch(t, run.records, outcome.Mismatched)

	reconcile := commands.NewReconcilePartialBatchesCommandHandler(e.batches(), silent)
	completed, err := reconcile.Handle(ctx, commands.NewReconcilePartialBatchesCommand())
	require.NoError(t, err)
	assert.Zero(t, completed)
	assert.Equal(t, batch.Partial, e.batch(t, run.batchID).Status())
	for _, id := range run.orderIDs {
		assert.Equal(t, order.CODPending, e.order(t, id).CODStatus())
	}

	for _, id := range run.records {
		r := e.record(t, id)
		corrected := r.ActualAmount()
		if r.SystemAmount().Equal(kernel.MoneyFromInt(30000)) {
			corrected = kernel.MoneyFromInt(25000)
		}
		adjust, err := commands.NewAdjustRecordCommand(accountant(), id, corrected, "recount")
		require.NoError(t, err)
		require.NoError(t, commands.NewAdjustRecordCommandHandler(e.ledger()).Handle(ctx, adjust))
	}

	completed, err = reconcile.Handle(ctx, commands.NewReconcilePartialBatchesCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, batch.Completed, e.batch(t, run.batchID).Status())
	for _, id := range run.orderIDs {
		assert.Equal(t, order.CODCollected, e.order(t, id).CODStatus())
	}
}

func TestAdjustRecordCommandHandler_Handle_OnlyMismatched(t *testing.T) {
	e := newEnv(t)
	run := e.submittedBatch(t, 90000, 60000, 30000)

	cmd, err := commands.NewAdjustRecordCommand(accountant(), run.records[0], kernel.MoneyFromInt(60000), "")
	require.NoError(t, err)
	err = commands.NewAdjustRecordCommandHandler(e.ledger()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	cmd, err = commands.NewAdjustRecordCommand(courierAt(kernel.NewUUID()), run.records[0], kernel.MoneyFromInt(60000), "")
	require.NoError(t, err)
	err = commands.NewAdjustRecordCommandHandler(e.ledger()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestChangeBatchStatusCommandHandler_Handle_Cancel(t *testing.T) {
	e := newEnv(t)
	run := e.submittedBatch(t, 90000, 60000, 30000)
	h := commands.NewChangeBatchStatusCommandHandler(e.batches(), silent)

	cmd, err := commands.NewChangeBatchStatusCommand(accountant(), run.batchID, batch.Cancelled)
	require.NoError(t, err)
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized, "managers only")

	cmd, err = commands.NewChangeBatchStatusCommand(manager(), run.batchID, batch.Cancelled)
	require.NoError(t, err)
	outcome, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, batch.Cancelled, outcome.Status)
	assert.Equal(t, batch.Cancelled, e.batch(t, run.batchID).Status())
	for _, id := range run.records {
		r := e.record(t, id)
		assert.Nil(t, r.BatchID(), "released")
		assert.Equal(t, collection.InBatch, r.Status())
	}

	// released records can be batched again
	again, err := commands.NewCreateBatchCommand(accountant(), kernel.NewUUID(), run.courier.ID, run.records, "")
	require.NoError(t, err)
	require.NoError(t, commands.NewCreateBatchCommandHandler(e.batches()).Handle(t.Context(), again))
}

func TestChangeBatchStatusCommandHandler_Handle_Transitions(t *testing.T) {
	e := newEnv(t)
	run := e.submittedBatch(t, 90000, 60000, 30000)
	h := commands.NewChangeBatchStatusCommandHandler(e.batches(), silent)

	skip, err := commands.NewChangeBatchStatusCommand(manager(), run.batchID, batch.Completed)
	require.NoError(t, err)
	_, err = h.Handle(t.Context(), skip)
	require.ErrorIs(t, err, errs.ErrInvalidTransition, "pending cannot complete directly")

	check, err := commands.NewChangeBatchStatusCommand(manager(), run.batchID, batch.Checking)
	require.NoError(t, err)
	outcome, err := h.Handle(t.Context(), check)
	require.NoError(t, err)
	assert.Equal(t, batch.Checking, outcome.Status)

	// totals agree, so asking for partial still completes
	partial, err := commands.NewChangeBatchStatusCommand(manager(), run.batchID, batch.Partial)
	require.NoError(t, err)
	outcome, err = h.Handle(t.Context(), partial)
	require.NoError(t, err)
	assert.Equal(t, batch.Completed, outcome.Status)

	outcome, err = h.Handle(t.Context(), skip)
	require.NoError(t, err)
	assert.True(t, outcome.Unchanged)
}

func TestReconcilePartialBatchesCommandHandler_Handle(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()

	settled := e.submittedBatch(t, 90000, 60000, 40000)
	open := e.submittedBatch(t, 50000, 30000, 30000)
	for _, run := range []cashRun{settled, open} {
		e.startChecking(t, run.batchID, nil)
		cmd, err := commands.NewCompleteBatchCommand(accountant(), run.batchID)
		require.NoError(t, err)
		outcome, err := commands.NewCompleteBatchCommandHandler(e.batches(), silent).Handle(ctx, cmd)
		require.NoError(t, err)
		require.Equal(t, batch.Partial, outcome.Status)
	}

	for _, id := range settled.records {
		adjust, err := commands.NewAdjustRecordCommand(accountant(), id, e.record(t, id).ActualAmount(), "")
		require.NoError(t, err)
		require.NoError(t, commands.NewAdjustRecordCommandHandler(e.ledger()).Handle(ctx, adjust))
	}

	completed, err := commands.NewReconcilePartialBatchesCommandHandler(e.batches(), silent).
		Handle(ctx, commands.NewReconcilePartialBatchesCommand())

	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, batch.Completed, e.batch(t, settled.batchID).Status())
	assert.Equal(t, batch.Partial, e.batch(t, open.batchID).Status())
	for _, id := range settled.orderIDs {
		assert.Equal(t, order.CODCollected, e.order(t, id).CODStatus())
	}
}

func TestReconcilePartialBatchesCommandHandler_Handle_NotConstructed(t *testing.T) {
	_, err := commands.NewReconcilePartialBatchesCommandHandler(nil, silent).
		Handle(t.Context(), commands.ReconcilePartialBatchesCommand{})

	require.ErrorIs(t, err, commands.ErrReconcilePartialBatchesCommandIsNotConstructed)
}
