package commands

import (
	"context"

	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
)

// CreateBatchCommandHandler creates a pending batch from the selected records
// that belong to the courier, are in_batch and are not yet in a batch.
// Totals are summed once here and never recomputed. An empty selection fails
// with ErrEmptySelection.
type CreateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

func NewCreateBatchCommandHandler(uowFactory BatchUoWFactory) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := authorizeReconciler("create batch", cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records := uow.SubmissionRepository()
	selected, err := records.ListForUpdate(ctx, cmd.RecordIDs())
	if err != nil {
		return err
	}

	members := make([]*collection.Submission, 0, len(selected))
	for _, r := range selected {
		if r.CourierID().IsEqual(cmd.CourierID()) && r.Status() == collection.InBatch && r.BatchID() == nil {
			members = append(members, r)
		}
	}

	b, err := batch.NewBatch(cmd.BatchID(), kernel.NewCode("PSB"), cmd.CourierID(), members, cmd.Notes())
	if err != nil {
		return err
	}

	if err = uow.BatchRepository().Add(ctx, b); err != nil {
		return err
	}

	for _, m := range members {
		if err = records.Update(ctx, m); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
