package commands

import (
	"context"
)

type StartCheckingCommandHandler struct {
	uowFactory BatchUoWFactory
}

func NewStartCheckingCommandHandler(uowFactory BatchUoWFactory) StartCheckingCommandHandler {
	return StartCheckingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the batch from pending to checking and records the reconciler.
func (h StartCheckingCommandHandler) Handle(ctx context.Context, cmd StartCheckingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := authorizeReconciler("start checking batch", cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BatchRepository()
	b, err := repo.GetForUpdate(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	if err = b.StartChecking(cmd.Actor().ID, cmd.ConfirmedActual()); err != nil {
		return err
	}

	if err = repo.Update(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
