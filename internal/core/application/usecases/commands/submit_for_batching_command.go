package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrSubmitForBatchingCommandIsNotConstructed = errors.New(
	"SubmitForBatchingCommand must be created via NewSubmitForBatchingCommand constructor",
)

// SubmitForBatchingCommand carries the cash a courier hands over for a set
// of their records.
type SubmitForBatchingCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	courierID   kernel.UUID
	recordIDs   []kernel.UUID
	totalActual kernel.Money

	guard guard.ConstructorGuard
}

func NewSubmitForBatchingCommand(
	actor kernel.Actor,
	courierID kernel.UUID,
	recordIDs []kernel.UUID,
	totalActual kernel.Money,
) (SubmitForBatchingCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		courierID.Validate(),
		validateIDs("recordIDs", recordIDs),
		totalActual.ValidateNonNegative("totalActual"),
	); err != nil {
		return SubmitForBatchingCommand{}, err
	}

	return SubmitForBatchingCommand{
		actor:       actor,
		courierID:   courierID,
		recordIDs:   uniqueIDs(recordIDs),
		totalActual: totalActual,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitForBatchingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitForBatchingCommandIsNotConstructed)
}

func (c SubmitForBatchingCommand) Actor() kernel.Actor       { return c.actor }
func (c SubmitForBatchingCommand) CourierID() kernel.UUID    { return c.courierID }
func (c SubmitForBatchingCommand) TotalActual() kernel.Money { return c.totalActual }

func (c SubmitForBatchingCommand) RecordIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.recordIDs...)
}
