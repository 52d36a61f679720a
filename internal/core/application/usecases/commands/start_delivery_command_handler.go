package commands

import (
	"context"
)

// StartDeliveryCommandHandler moves an order from at_dest_office to
// delivering and tells the courier.
type StartDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notices    NoticeSender
}

func NewStartDeliveryCommandHandler(uowFactory OrderUoWFactory, notices NoticeSender) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		notices:    notices,
	}
}

func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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

	if err = authorizeStaffOnOrder("start delivery", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.StartDelivery(cmd.Actor().ID, cmd.CourierID()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notices.Send(ctx, orderNotice(cmd.CourierID(), "delivery_assigned",
		"New delivery", "Parcel "+o.TrackingCode()+" is assigned to you", o.TrackingCode()))
	return nil
}
