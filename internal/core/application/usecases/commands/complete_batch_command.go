package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCompleteBatchCommandIsNotConstructed = errors.New(
	"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
)

// CompleteBatchCommand evaluates a batch under review, or settles a partial
// batch whose mismatches have been adjusted.
type CompleteBatchCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteBatchCommand(actor kernel.Actor, batchID kernel.UUID) (CompleteBatchCommand, error) {
	if err := errors.Join(actor.Validate(), batchID.Validate()); err != nil {
		return CompleteBatchCommand{}, err
	}

	return CompleteBatchCommand{
		actor:   actor,
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

func (c CompleteBatchCommand) Actor() kernel.Actor  { return c.actor }
func (c CompleteBatchCommand) BatchID() kernel.UUID { return c.batchID }
