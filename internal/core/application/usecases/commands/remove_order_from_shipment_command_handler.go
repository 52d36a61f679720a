package commands

import (
	"context"
)

// RemoveOrderFromShipmentCommandHandler unlinks an order and puts it back in
// the status it had when it was linked.
type RemoveOrderFromShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewRemoveOrderFromShipmentCommandHandler(uowFactory ShipmentUoWFactory) RemoveOrderFromShipmentCommandHandler {
	return RemoveOrderFromShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveOrderFromShipmentCommandHandler) Handle(ctx context.Context, cmd RemoveOrderFromShipmentCommand) error {
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

	actor := cmd.Actor()
	if err = authorizeShipmentCrew("remove order from shipment", actor, s.EmployeeID(), s.FromOfficeID()); err != nil {
		return err
	}

	link, err := s.Unlink(cmd.OrderID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.ReleaseFromShipment(actor.ID, s.ID(), link.PriorStatus); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
