package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// EditOrderCommandHandler applies a patch and reprices the order when a
// fee-relevant field changed. A locked field rejects the whole patch with
// ErrFieldLocked.
type EditOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	fees       ports.FeeOracle
}

func NewEditOrderCommandHandler(uowFactory OrderUoWFactory, fees ports.FeeOracle) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
	}
}

func (h EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	var editor order.Editor
	switch {
	case actor.Role == kernel.RoleCustomer:
		editor = order.EditorCustomer
	case actor.IsStaff():
		editor = order.EditorStaff
	default:
		return errs.NewUnauthorizedError("edit order", actor.ID)
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

	if err = authorizeOrder("edit order", actor, o); err != nil {
		return err
	}

	if err = o.Edit(editor, cmd.Patch()); err != nil {
		return err
	}

	if cmd.Patch().AffectsFee() {
		fee, err := quoteOrder(ctx, h.fees, o)
		if err != nil {
			return err
		}
		if err = o.Reprice(fee); err != nil {
			return err
		}
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
