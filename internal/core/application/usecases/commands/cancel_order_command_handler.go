package commands

import (
	"context"
)

// CancelOrderCommandHandler cancels draft, pending or confirmed orders.
// Anything later fails with ErrInvalidTransition.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = authorizeOrder("cancel order", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.Cancel(cmd.Actor().ID, cmd.Reason()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
