package commands

import (
	"context"
)

// AdjustRecordCommandHandler moves a mismatched record to adjusted. Once all
// mismatches of a partial batch are adjusted the batch can be completed.
type AdjustRecordCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewAdjustRecordCommandHandler(uowFactory LedgerUoWFactory) AdjustRecordCommandHandler {
	return AdjustRecordCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AdjustRecordCommandHandler) Handle(ctx context.Context, cmd AdjustRecordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := authorizeReconciler("adjust record", cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SubmissionRepository()
	r, err := repo.GetForUpdate(ctx, cmd.RecordID())
	if err != nil {
		return err
	}

	if err = r.Adjust(cmd.Corrected(), cmd.Note()); err != nil {
		return err
	}

	if err = repo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
