package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrStartReturnCommandIsNotConstructed = errors.New(
	"StartReturnCommand must be created via NewStartReturnCommand constructor",
)

// StartReturnCommand sends a failed parcel back towards its sender.
type StartReturnCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

func NewStartReturnCommand(actor kernel.Actor, orderID kernel.UUID, note string) (StartReturnCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return StartReturnCommand{}, err
	}

	return StartReturnCommand{
		actor:   actor,
		orderID: orderID,
		note:    strings.TrimSpace(note),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c StartReturnCommand) Validate() error {
	return c.guard.Validate(ErrStartReturnCommandIsNotConstructed)
}

func (c StartReturnCommand) Actor() kernel.Actor  { return c.actor }
func (c StartReturnCommand) OrderID() kernel.UUID { return c.orderID }
func (c StartReturnCommand) Note() string         { return c.note }
