package commands

import (
	"context"
)

type StartReturnCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewStartReturnCommandHandler(uowFactory OrderUoWFactory) StartReturnCommandHandler {
	return StartReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves a failed_delivery order to returning.
func (h StartReturnCommandHandler) Handle(ctx context.Context, cmd StartReturnCommand) error {
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

	if err = authorizeLastMile("start return", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.StartReturn(cmd.Actor().ID, cmd.Note()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
