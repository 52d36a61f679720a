package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a parcel.
// Customers create drafts they own; depot staff create pending orders on
// behalf of a shop, which becomes the owner.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(actor, orderID, shopID, order.Details{
//	    Sender:      sender,
//	    Recipient:   recipient,
//	    Weight:      decimal.NewFromInt(2),
//	    ServiceType: "standard",
//	    Payer:       order.PayerCustomer,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, feeOracle)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	ownerID kernel.UUID
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifiers. A zero ownerID means the
// actor owns the order. Parcel details are validated by the order itself.
func NewCreateOrderCommand(actor kernel.Actor, orderID, ownerID kernel.UUID, details order.Details) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if ownerID.IsZero() {
		ownerID = actor.ID
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setOwnerID(ownerID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor    { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CreateOrderCommand) OwnerID() kernel.UUID   { return c.ownerID }
func (c CreateOrderCommand) Details() order.Details { return c.details }

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}
