package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/kernel"
)

// ReconcilePartialBatchesCommandHandler completes partial batches whose
// mismatched records have all been adjusted. Each batch runs in its own
// transaction so one failure does not hold back the others; failures are
// joined into the returned error.
type ReconcilePartialBatchesCommandHandler struct {
	uowFactory BatchUoWFactory
	notices    NoticeSender
}

func NewReconcilePartialBatchesCommandHandler(uowFactory BatchUoWFactory, notices NoticeSender) ReconcilePartialBatchesCommandHandler {
	return ReconcilePartialBatchesCommandHandler{
		uowFactory: uowFactory,
		notices:    notices,
	}
}

// Handle returns the number of batches it completed.
func (h ReconcilePartialBatchesCommandHandler) Handle(ctx context.Context, cmd ReconcilePartialBatchesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.partialBatchIDs(ctx)
	if err != nil {
		return 0, err
	}

	var (
		completed int
		failures  []error
	)
	for _, id := range ids {
		done, err := h.reconcile(ctx, id)
		if err != nil {
			failures = append(failures, fmt.Errorf("batch %s: %w", id, err))
			continue
		}
		if done {
			completed++
		}
	}
	return completed, errors.Join(failures...)
}

func (h ReconcilePartialBatchesCommandHandler) partialBatchIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.BatchRepository().ListIDsByStatus(ctx, batch.Partial)
}

func (h ReconcilePartialBatchesCommandHandler) reconcile(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BatchRepository().GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}

	members, err := uow.SubmissionRepository().ListByBatch(ctx, id)
	if err != nil {
		return false, err
	}
	if !b.IsSettleable(members) {
		return false, nil
	}

	outcome, err := completeBatch(ctx, uow, kernel.SystemActorID, b)
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.notices.Send(ctx, batchNotice(b, outcome))
	return outcome.Status == batch.Completed, nil
}
