package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// StartShipmentCommandHandler moves the shipment and every linked order to
// in_transit atomically. A linked order that is no longer picked_up aborts
// the whole start with ErrInconsistentState.
type StartShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewStartShipmentCommandHandler(uowFactory ShipmentUoWFactory) StartShipmentCommandHandler {
	return StartShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h StartShipmentCommandHandler) Handle(ctx context.Context, cmd StartShipmentCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	actorID := cmd.Actor().ID
	if err = s.Start(actorID); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.ListForUpdate(ctx, s.OrderIDs())
	if err != nil {
		return err
	}

	for _, o := range orders {
		if o.Status() != order.PickedUp {
			return errs.NewInconsistentStateError("order", o.ID(),
				"is "+o.Status().String()+" but shipment "+s.Code()+" expects picked_up")
		}
		if err = o.Depart(actorID, s.ID()); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
