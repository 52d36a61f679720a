package services_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type orderOpts struct {
	from, to *kernel.UUID
	cod      int64
	fee      int64
	payer    order.Payer
}

func newOrder(t *testing.T, opts orderOpts) *order.Order {
	t.Helper()

	sender, err := kernel.NewContact("Shop", "0281234567", kernel.Address{Line: "1 Main", Region: "south"})
	require.NoError(t, err)
	recipient, err := kernel.NewContact("Lan", "0901234567", kernel.Address{Line: "2 Side", Region: "north"})
	require.NoError(t, err)
	if opts.payer == order.PayerUnknown {
		opts.payer = order.PayerCustomer
	}

	owner := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewCode("ORD"), order.CreatorDepot, owner, owner, order.Details{
		Sender:       sender,
		Recipient:    recipient,
		Weight:       decimal.NewFromInt(2),
		CODAmount:    kernel.MoneyFromInt(opts.cod),
		ServiceType:  "standard",
		Payer:        opts.payer,
		FromOfficeID: opts.from,
		ToOfficeID:   opts.to,
	}, kernel.MoneyFromInt(opts.fee))
	require.NoError(t, err)
	return o
}

// toDelivering drives a depot order from pending to delivering.
func toDelivering(t *testing.T, o *order.Order) {
	t.Helper()

	actor := kernel.NewUUID()
	shipmentID := kernel.NewUUID()
	require.NoError(t, o.Transition(order.Confirmed, actor, ""))
	require.NoError(t, o.PickUp(actor, shipmentID))
	require.NoError(t, o.Depart(actor, shipmentID))
	require.NoError(t, o.Arrive(actor, shipmentID))
	require.NoError(t, o.StartDelivery(actor, kernel.NewUUID()))
}
