package commands

import (
	"context"

	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ChangeBatchStatusCommandHandler checks the requested edge against the
// batch allow-list and then runs the matching operation. Completed and
// partial targets go through batch completion, so the resulting status is
// decided by the totals, not by the request. Cancelling releases members.
type ChangeBatchStatusCommandHandler struct {
	uowFactory BatchUoWFactory
	notices    NoticeSender
}

func NewChangeBatchStatusCommandHandler(uowFactory BatchUoWFactory, notices NoticeSender) ChangeBatchStatusCommandHandler {
	return ChangeBatchStatusCommandHandler{
		uowFactory: uowFactory,
		notices:    notices,
	}
}

func (h ChangeBatchStatusCommandHandler) Handle(ctx context.Context, cmd ChangeBatchStatusCommand) (batch.Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return batch.Outcome{}, err
	}

	actor := cmd.Actor()
	if !actor.IsManager() {
		return batch.Outcome{}, errs.NewUnauthorizedError("change batch status", actor.ID)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return batch.Outcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	b, err := batchRepo.GetForUpdate(ctx, cmd.BatchID())
	if err != nil {
		return batch.Outcome{}, err
	}

	to := cmd.To()
	if b.Status() == batch.Completed && to == batch.Completed {
		return batch.Outcome{Status: batch.Completed, Discrepancy: b.Discrepancy(), Unchanged: true}, nil
	}
	if !b.Status().CanTransitionTo(to) {
		return batch.Outcome{}, errs.NewInvalidTransitionError("batch", b.Status(), to)
	}

	var outcome batch.Outcome
	switch to {
	case batch.Checking:
		if err = b.StartChecking(actor.ID, nil); err != nil {
			return batch.Outcome{}, err
		}
		outcome = batch.Outcome{Status: b.Status(), Discrepancy: b.Discrepancy()}
		err = batchRepo.Update(ctx, b)
	case batch.Cancelled:
		outcome, err = h.cancel(ctx, uow, b, actor.ID)
	default:
		outcome, err = completeBatch(ctx, uow, actor.ID, b)
	}
	if err != nil {
		return batch.Outcome{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return batch.Outcome{}, err
	}

	if outcome.Status == batch.Completed || outcome.Status == batch.Partial {
		h.notices.Send(ctx, batchNotice(b, outcome))
	}
	return outcome, nil
}

func (h ChangeBatchStatusCommandHandler) cancel(ctx context.Context, uow BatchUoW, b *batch.Batch, actorID kernel.UUID) (batch.Outcome, error) {
	records := uow.SubmissionRepository()
	members, err := records.ListByBatch(ctx, b.ID())
	if err != nil {
		return batch.Outcome{}, err
	}

	if err = b.Cancel(actorID, members); err != nil {
		return batch.Outcome{}, err
	}

	for _, m := range members {
		if err = records.Update(ctx, m); err != nil {
			return batch.Outcome{}, err
		}
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return batch.Outcome{}, err
	}
	return batch.Outcome{Status: b.Status(), Discrepancy: b.Discrepancy()}, nil
}
