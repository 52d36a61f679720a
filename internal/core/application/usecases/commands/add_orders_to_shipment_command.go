package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAddOrdersToShipmentCommandIsNotConstructed = errors.New(
	"AddOrdersToShipmentCommand must be created via NewAddOrdersToShipmentCommand constructor",
)

// AddOrdersToShipmentCommand links more orders to a pending shipment.
type AddOrdersToShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	shipmentID kernel.UUID
	orderIDs   []kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddOrdersToShipmentCommand(actor kernel.Actor, shipmentID kernel.UUID, orderIDs []kernel.UUID) (AddOrdersToShipmentCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), validateIDs("orderIDs", orderIDs)); err != nil {
		return AddOrdersToShipmentCommand{}, err
	}

	return AddOrdersToShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		orderIDs:   uniqueIDs(orderIDs),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddOrdersToShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAddOrdersToShipmentCommandIsNotConstructed)
}

func (c AddOrdersToShipmentCommand) Actor() kernel.Actor     { return c.actor }
func (c AddOrdersToShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

func (c AddOrdersToShipmentCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}
