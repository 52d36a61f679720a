package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand records a successful hand-over to the recipient.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(actor kernel.Actor, orderID kernel.UUID) (CompleteDeliveryCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) Actor() kernel.Actor  { return c.actor }
func (c CompleteDeliveryCommand) OrderID() kernel.UUID { return c.orderID }
