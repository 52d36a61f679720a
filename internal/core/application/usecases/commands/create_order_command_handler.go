package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// CreateOrderCommandHandler prices and persists a new order.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, feeOracle)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	fees       ports.FeeOracle
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, fees ports.FeeOracle) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
	}
}

// Handle resolves the creator type from the actor's role, computes the
// shipping fee and stores the order with its first history entry.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	details := cmd.Details()

	var creator order.CreatorType
	switch {
	case actor.Role == kernel.RoleCustomer:
		if !actor.Is(cmd.OwnerID()) {
			return errs.NewUnauthorizedError("create order for another owner", actor.ID)
		}
		creator = order.CreatorCustomer
	case actor.IsStaff():
		if details.FromOfficeID == nil {
			details.FromOfficeID = actor.OfficeID
		}
		if details.FromOfficeID != nil && !actor.WorksAt(*details.FromOfficeID) {
			return errs.NewUnauthorizedError("create order at another office", actor.ID)
		}
		creator = order.CreatorDepot
	default:
		return errs.NewUnauthorizedError("create order", actor.ID)
	}

	fee, err := quoteDetails(ctx, h.fees, details)
	if err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), kernel.NewCode("ORD"), creator, actor.ID, cmd.OwnerID(), details, fee)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
