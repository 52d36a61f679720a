package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an order that has not been picked up.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(actor kernel.Actor, orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		actor:   actor,
		orderID: orderID,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelOrderCommand) Reason() string       { return c.reason }
