package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrRemoveOrderFromShipmentCommandIsNotConstructed = errors.New(
	"RemoveOrderFromShipmentCommand must be created via NewRemoveOrderFromShipmentCommand constructor",
)

// RemoveOrderFromShipmentCommand unlinks one order from a pending shipment.
type RemoveOrderFromShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	shipmentID kernel.UUID
	orderID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveOrderFromShipmentCommand(actor kernel.Actor, shipmentID, orderID kernel.UUID) (RemoveOrderFromShipmentCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), orderID.Validate()); err != nil {
		return RemoveOrderFromShipmentCommand{}, err
	}

	return RemoveOrderFromShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveOrderFromShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderFromShipmentCommandIsNotConstructed)
}

func (c RemoveOrderFromShipmentCommand) Actor() kernel.Actor     { return c.actor }
func (c RemoveOrderFromShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c RemoveOrderFromShipmentCommand) OrderID() kernel.UUID    { return c.orderID }
