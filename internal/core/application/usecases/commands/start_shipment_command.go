package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrStartShipmentCommandIsNotConstructed = errors.New(
	"StartShipmentCommand must be created via NewStartShipmentCommand constructor",
)

// StartShipmentCommand puts a pending shipment on the road. Only its
// employee may issue it.
type StartShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartShipmentCommand(actor kernel.Actor, shipmentID kernel.UUID) (StartShipmentCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return StartShipmentCommand{}, err
	}

	return StartShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c StartShipmentCommand) Validate() error {
	return c.guard.Validate(ErrStartShipmentCommandIsNotConstructed)
}

func (c StartShipmentCommand) Actor() kernel.Actor     { return c.actor }
func (c StartShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
