package order_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newDetails(t *testing.T) order.Details {
	t.Helper()

	sender, err := kernel.NewContact("Shop Hoa Mai", "0281234567", kernel.Address{Line: "5 Nguyen Hue", Region: "south"})
	require.NoError(t, err)
	recipient, err := kernel.NewContact("Lan Tran", "0901234567", kernel.Address{Line: "12 Ly Thuong Kiet", Region: "north"})
	require.NoError(t, err)

	from := kernel.NewUUID()
	to := kernel.NewUUID()
	return order.Details{
		Sender:        sender,
		Recipient:     recipient,
		Weight:        decimal.RequireFromString("1.5"),
		DeclaredValue: kernel.MoneyFromInt(300000),
		CODAmount:     kernel.MoneyFromInt(50000),
		ServiceType:   "standard",
		Payer:         order.PayerCustomer,
		FromOfficeID:  &from,
		ToOfficeID:    &to,
	}
}

func newOrder(t *testing.T, creator order.CreatorType) *order.Order {
	t.Helper()

	owner := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewCode("ORD"), creator, owner, owner,
		newDetails(t), kernel.MoneyFromInt(20000))
	require.NoError(t, err)
	return o
}

// walk drives an order along the main line until it reaches target.
func walk(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()

	actor := kernel.NewUUID()
	shipment := kernel.NewUUID()
	steps := []struct {
		to  order.Status
		run func() error
	}{
		{order.Pending, func() error { return o.AdvanceToPending(actor) }},
		{order.Confirmed, func() error { return o.Transition(order.Confirmed, actor, "") }},
		{order.ReadyForPickup, func() error { return o.Transition(order.ReadyForPickup, actor, "") }},
		{order.PickedUp, func() error { return o.PickUp(actor, shipment) }},
		{order.InTransit, func() error { return o.Depart(actor, shipment) }},
		{order.AtDestOffice, func() error { return o.Arrive(actor, shipment) }},
		{order.Delivering, func() error { return o.StartDelivery(actor, kernel.NewUUID()) }},
	}

	for _, step := range steps {
		if o.Status() == target {
			return
		}
		if o.Status() >= step.to {
			continue
		}
		require.NoError(t, step.run(), "moving to %s", step.to)
	}
	require.Equal(t, target, o.Status())
}
