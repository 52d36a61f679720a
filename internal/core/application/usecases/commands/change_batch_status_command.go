package commands

import (
	"errors"

	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrChangeBatchStatusCommandIsNotConstructed = errors.New(
	"ChangeBatchStatusCommand must be created via NewChangeBatchStatusCommand constructor",
)

// ChangeBatchStatusCommand is a manager's explicit request to move a batch.
type ChangeBatchStatusCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	batchID kernel.UUID
	to      batch.Status

	guard guard.ConstructorGuard
}

func NewChangeBatchStatusCommand(actor kernel.Actor, batchID kernel.UUID, to batch.Status) (ChangeBatchStatusCommand, error) {
	var toErr error
	if to == batch.Unknown {
		toErr = errs.NewValueIsRequiredError("to")
	}

	if err := errors.Join(actor.Validate(), batchID.Validate(), toErr); err != nil {
		return ChangeBatchStatusCommand{}, err
	}

	return ChangeBatchStatusCommand{
		actor:   actor,
		batchID: batchID,
		to:      to,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeBatchStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeBatchStatusCommandIsNotConstructed)
}

func (c ChangeBatchStatusCommand) Actor() kernel.Actor  { return c.actor }
func (c ChangeBatchStatusCommand) BatchID() kernel.UUID { return c.batchID }
func (c ChangeBatchStatusCommand) To() batch.Status     { return c.to }
