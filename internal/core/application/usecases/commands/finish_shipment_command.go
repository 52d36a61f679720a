package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrFinishShipmentCommandIsNotConstructed = errors.New(
	"FinishShipmentCommand must be created via NewFinishShipmentCommand constructor",
)

// FinishShipmentCommand closes a shipment as completed or cancelled.
type FinishShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	shipmentID kernel.UUID
	outcome    shipment.Status

	guard guard.ConstructorGuard
}

func NewFinishShipmentCommand(actor kernel.Actor, shipmentID kernel.UUID, outcome shipment.Status) (FinishShipmentCommand, error) {
	var outcomeErr error
	if !outcome.IsTerminal() {
		outcomeErr = errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%s is not a final status", outcome))
	}

	if err := errors.Join(actor.Validate(), shipmentID.Validate(), outcomeErr); err != nil {
		return FinishShipmentCommand{}, err
	}

	return FinishShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		outcome:    outcome,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c FinishShipmentCommand) Validate() error {
	return c.guard.Validate(ErrFinishShipmentCommandIsNotConstructed)
}

func (c FinishShipmentCommand) Actor() kernel.Actor      { return c.actor }
func (c FinishShipmentCommand) ShipmentID() kernel.UUID  { return c.shipmentID }
func (c FinishShipmentCommand) Outcome() shipment.Status { return c.outcome }
