package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrReconcilePartialBatchesCommandIsNotConstructed = errors.New(
	"ReconcilePartialBatchesCommand must be created via NewReconcilePartialBatchesCommand constructor",
)

// ReconcilePartialBatchesCommand asks for every partial batch to be
// re-evaluated. It is issued by the scheduler and acts as the system.
type ReconcilePartialBatchesCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcilePartialBatchesCommand() ReconcilePartialBatchesCommand {
	return ReconcilePartialBatchesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ReconcilePartialBatchesCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePartialBatchesCommandIsNotConstructed)
}
