package commands

import (
	"context"

	"logistics/internal/core/domain/services"
)

// CompleteReturnCommandHandler moves a returning order to returned and
// applies the settlement rules for returned parcels:
//   - recipient unavailable shifts the shipping fee to the shop
//   - recipient refused clears the COD expectation
//   - cash already collected is answered with a negative refund record
type CompleteReturnCommandHandler struct {
	uowFactory LedgerUoWFactory
	settlement services.Settlement
	notices    NoticeSender
}

func NewCompleteReturnCommandHandler(uowFactory LedgerUoWFactory, notices NoticeSender) CompleteReturnCommandHandler {
	return CompleteReturnCommandHandler{
		uowFactory: uowFactory,
		settlement: services.NewSettlement(),
		notices:    notices,
	}
}

func (h CompleteReturnCommandHandler) Handle(ctx context.Context, cmd CompleteReturnCommand) error {
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

	if err = authorizeLastMile("complete return", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.ReturnToSender(cmd.Actor().ID, nil, cmd.Note()); err != nil {
		return err
	}

	if err = settleReturned(ctx, uow.SubmissionRepository(), h.settlement, o); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notices.Send(ctx, orderNotice(o.OwnerID(), "order_returned",
		"Parcel returned", "Parcel "+o.TrackingCode()+" was returned to the sender", o.TrackingCode()))
	return nil
}
