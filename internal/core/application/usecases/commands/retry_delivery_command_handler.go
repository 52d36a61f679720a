package commands

import (
	"context"
)

// RetryDeliveryCommandHandler re-enters delivering from failed_delivery.
// With retries disabled by policy every request fails with
// ErrInvalidTransition.
type RetryDeliveryCommandHandler struct {
	uowFactory   OrderUoWFactory
	retryAllowed bool
}

func NewRetryDeliveryCommandHandler(uowFactory OrderUoWFactory, retryAllowed bool) RetryDeliveryCommandHandler {
	return RetryDeliveryCommandHandler{
		uowFactory:   uowFactory,
		retryAllowed: retryAllowed,
	}
}

func (h RetryDeliveryCommandHandler) Handle(ctx context.Context, cmd RetryDeliveryCommand) error {
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

	if err = authorizeLastMile("retry delivery", cmd.Actor(), o); err != nil {
		return err
	}

	if err = o.RetryDelivery(cmd.Actor().ID, h.retryAllowed); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
