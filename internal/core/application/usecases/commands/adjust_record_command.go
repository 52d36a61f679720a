package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAdjustRecordCommandIsNotConstructed = errors.New(
	"AdjustRecordCommand must be created via NewAdjustRecordCommand constructor",
)

// AdjustRecordCommand resolves a mismatched record with the amount the
// reconciler settled on.
type AdjustRecordCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	recordID  kernel.UUID
	corrected kernel.Money
	note      string

	guard guard.ConstructorGuard
}

func NewAdjustRecordCommand(actor kernel.Actor, recordID kernel.UUID, corrected kernel.Money, note string) (AdjustRecordCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		recordID.Validate(),
		corrected.ValidateNonNegative("correctedAmount"),
	); err != nil {
		return AdjustRecordCommand{}, err
	}

	return AdjustRecordCommand{
		actor:     actor,
		recordID:  recordID,
		corrected: corrected,
		note:      strings.TrimSpace(note),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustRecordCommand) Validate() error {
	return c.guard.Validate(ErrAdjustRecordCommandIsNotConstructed)
}

func (c AdjustRecordCommand) Actor() kernel.Actor     { return c.actor }
func (c AdjustRecordCommand) RecordID() kernel.UUID   { return c.recordID }
func (c AdjustRecordCommand) Corrected() kernel.Money { return c.corrected }
func (c AdjustRecordCommand) Note() string            { return c.note }
