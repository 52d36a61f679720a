package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCollectCashCommandIsNotConstructed = errors.New(
	"CollectCashCommand must be created via NewCollectCashCommand constructor",
)

// CollectCashCommand records COD cash a courier took from the recipient.
// systemOverride replaces the order's COD amount as the expected sum;
// actual defaults to the expected sum.
type CollectCashCommand struct { //nolint:recvcheck //using for validation
	actor          kernel.Actor
	recordID       kernel.UUID
	orderID        kernel.UUID
	courierID      kernel.UUID
	systemOverride *kernel.Money
	actual         *kernel.Money
	notes          string

	guard guard.ConstructorGuard
}

func NewCollectCashCommand(
	actor kernel.Actor,
	recordID, orderID, courierID kernel.UUID,
	systemOverride, actual *kernel.Money,
	notes string,
) (CollectCashCommand, error) {
	var overrideErr, actualErr error
	if systemOverride != nil {
		overrideErr = systemOverride.ValidateNonNegative("systemAmount")
	}
	if actual != nil {
		actualErr = actual.ValidateNonNegative("actualAmount")
	}

	if err := errors.Join(
		actor.Validate(),
		recordID.Validate(),
		orderID.Validate(),
		courierID.Validate(),
		overrideErr,
		actualErr,
	); err != nil {
		return CollectCashCommand{}, err
	}

	return CollectCashCommand{
		actor:          actor,
		recordID:       recordID,
		orderID:        orderID,
		courierID:      courierID,
		systemOverride: systemOverride,
		actual:         actual,
		notes:          strings.TrimSpace(notes),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CollectCashCommand) Validate() error {
	return c.guard.Validate(ErrCollectCashCommandIsNotConstructed)
}

func (c CollectCashCommand) Actor() kernel.Actor           { return c.actor }
func (c CollectCashCommand) RecordID() kernel.UUID         { return c.recordID }
func (c CollectCashCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CollectCashCommand) CourierID() kernel.UUID        { return c.courierID }
func (c CollectCashCommand) SystemOverride() *kernel.Money { return c.systemOverride }
func (c CollectCashCommand) Actual() *kernel.Money         { return c.actual }
func (c CollectCashCommand) Notes() string                 { return c.notes }
