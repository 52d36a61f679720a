package commands

import (
	"context"
)

// TransitionOrderCommandHandler applies staff transitions checked against
// the order's transition table. Customers cannot use it.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	if err = authorizeStaffOnOrder("transition order", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.Transition(cmd.To(), cmd.Actor().ID, cmd.Note()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
