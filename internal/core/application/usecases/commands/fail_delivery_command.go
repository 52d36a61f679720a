package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrFailDeliveryCommandIsNotConstructed = errors.New(
	"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
)

// FailDeliveryCommand records a failed attempt and why it failed.
type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	orderID  kernel.UUID
	incident order.Incident

	guard guard.ConstructorGuard
}

func NewFailDeliveryCommand(actor kernel.Actor, orderID kernel.UUID, incident order.Incident) (FailDeliveryCommand, error) {
	var incidentErr error
	if incident == order.IncidentNone {
		incidentErr = errs.NewValueIsRequiredError("incident")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), incidentErr); err != nil {
		return FailDeliveryCommand{}, err
	}

	return FailDeliveryCommand{
		actor:    actor,
		orderID:  orderID,
		incident: incident,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

func (c FailDeliveryCommand) Actor() kernel.Actor      { return c.actor }
func (c FailDeliveryCommand) OrderID() kernel.UUID     { return c.orderID }
func (c FailDeliveryCommand) Incident() order.Incident { return c.incident }
