package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand patches order fields. Which fields are writable depends
// on who edits, who created the order and its current status.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	patch   order.Patch

	guard guard.ConstructorGuard
}

func NewEditOrderCommand(actor kernel.Actor, orderID kernel.UUID, patch order.Patch) (EditOrderCommand, error) {
	var patchErr error
	if len(patch.Fields()) == 0 {
		patchErr = errs.NewValueIsRequiredError("patch")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), patchErr); err != nil {
		return EditOrderCommand{}, err
	}

	return EditOrderCommand{
		actor:   actor,
		orderID: orderID,
		patch:   patch,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

func (c EditOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c EditOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c EditOrderCommand) Patch() order.Patch   { return c.patch }
