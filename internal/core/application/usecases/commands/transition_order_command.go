package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand is a staff-driven status change on the pickup side:
// confirmed, ready_for_pickup, picking_up or at_origin_office.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	to      order.Status
	note    string

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(actor kernel.Actor, orderID kernel.UUID, to order.Status, note string) (TransitionOrderCommand, error) {
	var toErr error
	if to == order.Unknown {
		toErr = errs.NewValueIsRequiredError("to")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), toErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		actor:   actor,
		orderID: orderID,
		to:      to,
		note:    strings.TrimSpace(note),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderCommand) To() order.Status     { return c.to }
func (c TransitionOrderCommand) Note() string         { return c.note }
