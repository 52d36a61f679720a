package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCompleteReturnCommandIsNotConstructed = errors.New(
	"CompleteReturnCommand must be created via NewCompleteReturnCommand constructor",
)

// CompleteReturnCommand records that a returning parcel reached its sender.
type CompleteReturnCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

func NewCompleteReturnCommand(actor kernel.Actor, orderID kernel.UUID, note string) (CompleteReturnCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return CompleteReturnCommand{}, err
	}

	return CompleteReturnCommand{
		actor:   actor,
		orderID: orderID,
		note:    strings.TrimSpace(note),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteReturnCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReturnCommandIsNotConstructed)
}

func (c CompleteReturnCommand) Actor() kernel.Actor  { return c.actor }
func (c CompleteReturnCommand) OrderID() kernel.UUID { return c.orderID }
func (c CompleteReturnCommand) Note() string         { return c.note }
