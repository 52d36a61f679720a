package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// FeeQuery carries the parcel attributes the tariff depends on.
type FeeQuery struct {
	Weight          decimal.Decimal
	ServiceType     string
	SenderRegion    string
	RecipientRegion string
	CODAmount       kernel.Money
	DeclaredValue   kernel.Money
}

// FeeOracle computes the shipping fee for a parcel.
type FeeOracle interface {
	ComputeFee(ctx context.Context, query FeeQuery) (kernel.Money, error)
}

// Notice is a fire-and-forget message for a user.
type Notice struct {
	UserID    kernel.UUID
	Title     string
	Message   string
	EventType string
	Ref       string
}

// Notifier delivers notices. Callers log failures and never roll back on them.
type Notifier interface {
	Notify(ctx context.Context, notice Notice) error
}

// ArrivalDispatcher is told once per order when a shipment completes at the
// order's destination office, so last-mile assignment can start.
type ArrivalDispatcher interface {
	AutoAssignOnArrival(ctx context.Context, orderID kernel.UUID) error
}
