package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand hands a parcel at its destination office to a courier.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(actor kernel.Actor, orderID, courierID kernel.UUID) (StartDeliveryCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), courierID.Validate()); err != nil {
		return StartDeliveryCommand{}, err
	}

	return StartDeliveryCommand{
		actor:     actor,
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

func (c StartDeliveryCommand) Actor() kernel.Actor    { return c.actor }
func (c StartDeliveryCommand) OrderID() kernel.UUID   { return c.orderID }
func (c StartDeliveryCommand) CourierID() kernel.UUID { return c.courierID }
