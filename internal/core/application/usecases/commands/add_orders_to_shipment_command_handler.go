package commands

import (
	"context"
)

// AddOrdersToShipmentCommandHandler links orders to a pending shipment.
// Every order must pass the shipment's eligibility and destination checks,
// otherwise nothing is linked and ErrOrderNotAddable is returned.
type AddOrdersToShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewAddOrdersToShipmentCommandHandler(uowFactory ShipmentUoWFactory) AddOrdersToShipmentCommandHandler {
	return AddOrdersToShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AddOrdersToShipmentCommandHandler) Handle(ctx context.Context, cmd AddOrdersToShipmentCommand) error {
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
	if err = authorizeShipmentCrew("add orders to shipment", actor, s.EmployeeID(), s.FromOfficeID()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.ListForUpdate(ctx, cmd.OrderIDs())
	if err != nil {
		return err
	}

	for _, o := range orders {
		if err = s.CheckAddable(o); err != nil {
			return err
		}
		prior := o.Status()
		if err = s.Link(o.ID(), prior); err != nil {
			return err
		}
		if err = o.PickUp(actor.ID, s.ID()); err != nil {
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
