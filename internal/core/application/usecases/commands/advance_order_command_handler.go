package commands

import (
	"context"
)

type AdvanceOrderToPendingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceOrderToPendingCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderToPendingCommandHandler {
	return AdvanceOrderToPendingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves a draft to pending. Only drafts qualify.
func (h AdvanceOrderToPendingCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderToPendingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = authorizeOrder("submit order", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.AdvanceToPending(cmd.Actor().ID); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
