package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

func quoteDetails(ctx context.Context, fees ports.FeeOracle, d order.Details) (kernel.Money, error) {
	return fees.ComputeFee(ctx, ports.FeeQuery{
		Weight:          d.Weight,
		ServiceType:     d.ServiceType,
		SenderRegion:    d.Sender.Address().Region,
		RecipientRegion: d.Recipient.Address().Region,
		CODAmount:       d.CODAmount,
		DeclaredValue:   d.DeclaredValue,
	})
}

func quoteOrder(ctx context.Context, fees ports.FeeOracle, o *order.Order) (kernel.Money, error) {
	return quoteDetails(ctx, fees, order.Details{
		Sender:        o.Sender(),
		Recipient:     o.Recipient(),
		Weight:        o.Weight(),
		DeclaredValue: o.DeclaredValue(),
		CODAmount:     o.CODAmount(),
		ServiceType:   o.ServiceType(),
	})
}
