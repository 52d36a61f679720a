package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrStartCheckingCommandIsNotConstructed = errors.New(
	"StartCheckingCommand must be created via NewStartCheckingCommand constructor",
)

// StartCheckingCommand puts a pending batch under review. confirmedActual
// is the cash the reconciler counted, when it differs from what the courier
// declared.
type StartCheckingCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	batchID         kernel.UUID
	confirmedActual *kernel.Money

	guard guard.ConstructorGuard
}

func NewStartCheckingCommand(actor kernel.Actor, batchID kernel.UUID, confirmedActual *kernel.Money) (StartCheckingCommand, error) {
	var amountErr error
	if confirmedActual != nil {
		amountErr = confirmedActual.ValidateNonNegative("confirmedActual")
	}

	if err := errors.Join(actor.Validate(), batchID.Validate(), amountErr); err != nil {
		return StartCheckingCommand{}, err
	}

	return StartCheckingCommand{
		actor:           actor,
		batchID:         batchID,
		confirmedActual: confirmedActual,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c StartCheckingCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckingCommandIsNotConstructed)
}

func (c StartCheckingCommand) Actor() kernel.Actor            { return c.actor }
func (c StartCheckingCommand) BatchID() kernel.UUID           { return c.batchID }
func (c StartCheckingCommand) ConfirmedActual() *kernel.Money { return c.confirmedActual }
