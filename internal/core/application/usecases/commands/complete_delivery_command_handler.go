package commands

import (
	"context"

	"logistics/internal/core/domain/services"
)

// CompleteDeliveryCommandHandler marks an order delivered and records the
// cash owed for it in the same transaction: a fee record when the customer
// pays shipping, a COD record when COD is due and was not collected earlier.
//
// Example:
//
//	handler := NewCompleteDeliveryCommandHandler(ledgerUoWFactory, notices)
//	cmd, _ := NewCompleteDeliveryCommand(courier, orderID)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrInvalidTransition) {
//	    // the parcel is not out for delivery
//	}
type CompleteDeliveryCommandHandler struct {
	uowFactory LedgerUoWFactory
	settlement services.Settlement
	notices    NoticeSender
}

func NewCompleteDeliveryCommandHandler(uowFactory LedgerUoWFactory, notices NoticeSender) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		settlement: services.NewSettlement(),
		notices:    notices,
	}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if err = authorizeLastMile("complete delivery", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.Deliver(cmd.Actor().ID); err != nil {
		return err
	}

	if err = settleDelivered(ctx, uow.SubmissionRepository(), h.settlement, o); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notices.Send(ctx, orderNotice(o.OwnerID(), "order_delivered",
		"Parcel delivered", "Parcel "+o.TrackingCode()+" was delivered", o.TrackingCode()))
	return nil
}
