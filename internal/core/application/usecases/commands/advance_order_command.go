package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAdvanceOrderToPendingCommandIsNotConstructed = errors.New(
	"AdvanceOrderToPendingCommand must be created via NewAdvanceOrderToPendingCommand constructor",
)

// AdvanceOrderToPendingCommand submits a customer draft to the network.
type AdvanceOrderToPendingCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAdvanceOrderToPendingCommand(actor kernel.Actor, orderID kernel.UUID) (AdvanceOrderToPendingCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return AdvanceOrderToPendingCommand{}, err
	}

	return AdvanceOrderToPendingCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderToPendingCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderToPendingCommandIsNotConstructed)
}

func (c AdvanceOrderToPendingCommand) Actor() kernel.Actor  { return c.actor }
func (c AdvanceOrderToPendingCommand) OrderID() kernel.UUID { return c.orderID }
