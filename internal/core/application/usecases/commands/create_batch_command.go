package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCreateBatchCommandIsNotConstructed = errors.New(
	"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
)

// CreateBatchCommand groups a courier's submitted records for checking.
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	batchID   kernel.UUID
	courierID kernel.UUID
	recordIDs []kernel.UUID
	notes     string

	guard guard.ConstructorGuard
}

func NewCreateBatchCommand(
	actor kernel.Actor,
	batchID, courierID kernel.UUID,
	recordIDs []kernel.UUID,
	notes string,
) (CreateBatchCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		batchID.Validate(),
		courierID.Validate(),
		validateIDs("recordIDs", recordIDs),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return CreateBatchCommand{
		actor:     actor,
		batchID:   batchID,
		courierID: courierID,
		recordIDs: uniqueIDs(recordIDs),
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

func (c CreateBatchCommand) Actor() kernel.Actor    { return c.actor }
func (c CreateBatchCommand) BatchID() kernel.UUID   { return c.batchID }
func (c CreateBatchCommand) CourierID() kernel.UUID { return c.courierID }
func (c CreateBatchCommand) Notes() string          { return c.notes }

func (c CreateBatchCommand) RecordIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.recordIDs...)
}
