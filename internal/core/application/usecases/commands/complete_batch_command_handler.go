package commands

import (
	"context"

	"logistics/internal/core/domain/model/batch"
)

// CompleteBatchCommandHandler runs batch completion.
//
// Unequal totals are not an error: the outcome reports AmountMismatch and the
// batch is left partial with its mismatched members listed. Completing an
// already completed batch returns the stored result and writes nothing.
// Completion marks the COD of member orders collected.
//
// Example:
//
//	outcome, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if outcome.AmountMismatch {
//	    log.Printf("batch short by %s", outcome.Discrepancy)
//	}
type CompleteBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	notices    NoticeSender
}

func NewCompleteBatchCommandHandler(uowFactory BatchUoWFactory, notices NoticeSender) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory: uowFactory,
		notices:    notices,
	}
}

func (h CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) (batch.Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return batch.Outcome{}, err
	}

	if err := authorizeReconciler("complete batch", cmd.Actor()); err != nil {
		return batch.Outcome{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return batch.Outcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BatchRepository().GetForUpdate(ctx, cmd.BatchID())
	if err != nil {
		return batch.Outcome{}, err
	}

	outcome, err := completeBatch(ctx, uow, cmd.Actor().ID, b)
	if err != nil {
		return batch.Outcome{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return batch.Outcome{}, err
	}

	if !outcome.Unchanged {
		h.notices.Send(ctx, batchNotice(b, outcome))
	}
	return outcome, nil
}
