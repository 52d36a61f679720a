package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// CollectCashCommandHandler creates a pending COD record for an order out
// for delivery or already delivered, and marks the order's COD pending.
//
// Returns:
//   - ErrAlreadyCollected when the order has a pending or in_batch record
//   - ErrInconsistentState when the order is in any other status
//   - ErrValueIsInvalid when there is nothing to collect
type CollectCashCommandHandler struct {
	uowFactory LedgerUoWFactory
}

func NewCollectCashCommandHandler(uowFactory LedgerUoWFactory) CollectCashCommandHandler {
	return CollectCashCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CollectCashCommandHandler) Handle(ctx context.Context, cmd CollectCashCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor := cmd.Actor()
	if actor.Role == kernel.RoleCourier {
		if !actor.Is(cmd.CourierID()) {
			return errs.NewUnauthorizedError("collect cash for another courier", actor.ID)
		}
	} else if err = authorizeStaffOnOrder("collect cash", actor, o); err != nil {
		return err
	}

	if o.Status() != order.Delivering && o.Status() != order.Delivered {
		return errs.NewInconsistentStateError("order", o.ID(), "cash is collected only at delivery, order is "+o.Status().String())
	}

	recordRepo := uow.SubmissionRepository()
	existing, err := recordRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	for _, r := range existing {
		if !r.IsRefund() && r.Status().IsOpen() {
			return fmt.Errorf("%w: order %s has %s record %s", errs.ErrAlreadyCollected, o.TrackingCode(), r.Status(), r.Code())
		}
	}

	system := o.CODAmount()
	if override := cmd.SystemOverride(); override != nil {
		system = *override
	}
	if !system.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("systemAmount", fmt.Errorf("order %s has no cash to collect", o.TrackingCode()))
	}
	actual := system
	if a := cmd.Actual(); a != nil {
		actual = *a
	}

	record, err := collection.NewSubmission(cmd.RecordID(), kernel.NewCode("PS"), o.ID(), cmd.CourierID(),
		collection.KindCOD, system, actual, cmd.Notes())
	if err != nil {
		return err
	}

	if o.CODAmount().IsPositive() {
		if err = o.MarkCODPending(); err != nil {
			return err
		}
	}

	if err = recordRepo.Add(ctx, record); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
