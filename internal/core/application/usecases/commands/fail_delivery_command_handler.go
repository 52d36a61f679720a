package commands

import (
	"context"
)

type FailDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notices    NoticeSender
}

func NewFailDeliveryCommandHandler(uowFactory OrderUoWFactory, notices NoticeSender) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
		notices:    notices,
	}
}

// Handle moves a delivering order to failed_delivery and tells the owner.
func (h FailDeliveryCommandHandler) Handle(ctx context.Context, cmd FailDeliveryCommand) error {
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

	if err = authorizeLastMile("fail delivery", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.FailDelivery(cmd.Actor().ID, cmd.Incident()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notices.Send(ctx, orderNotice(o.OwnerID(), "delivery_failed",
		"Delivery failed", "Parcel "+o.TrackingCode()+": "+cmd.Incident().String(), o.TrackingCode()))
	return nil
}
