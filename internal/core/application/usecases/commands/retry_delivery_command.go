package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrRetryDeliveryCommandIsNotConstructed = errors.New(
	"RetryDeliveryCommand must be created via NewRetryDeliveryCommand constructor",
)

// RetryDeliveryCommand sends a failed parcel out again with the same courier.
type RetryDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRetryDeliveryCommand(actor kernel.Actor, orderID kernel.UUID) (RetryDeliveryCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return RetryDeliveryCommand{}, err
	}

	return RetryDeliveryCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RetryDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRetryDeliveryCommandIsNotConstructed)
}

func (c RetryDeliveryCommand) Actor() kernel.Actor  { return c.actor }
func (c RetryDeliveryCommand) OrderID() kernel.UUID { return c.orderID }
