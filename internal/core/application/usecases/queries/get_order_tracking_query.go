// Package queries contains read-only use cases. Handlers read straight from
// the database into response structs and never load aggregates.
package queries

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery looks an order up by its public tracking code, or
// by id for callers that just created it.
//
// Example:
//
//	query, err := NewGetOrderTrackingQuery("ORD-7F3K2Q")
//	if err != nil {
//	    return err
//	}
//	tracking, err := handler.Handle(ctx, query)
type GetOrderTrackingQuery struct {
	trackingCode string
	orderID      *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(trackingCode string) (GetOrderTrackingQuery, error) {
	trackingCode = strings.ToUpper(strings.TrimSpace(trackingCode))
	if trackingCode == "" {
		return GetOrderTrackingQuery{}, errs.NewValueIsRequiredError("trackingCode")
	}
	return GetOrderTrackingQuery{
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func NewGetOrderTrackingQueryByID(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) TrackingCode() string  { return q.trackingCode }
func (q GetOrderTrackingQuery) OrderID() *kernel.UUID { return q.orderID }

// GetOrderTrackingQueryResponse is the order as shown to customers and staff,
// with its status changes oldest first.
type GetOrderTrackingQueryResponse struct {
	ID            kernel.UUID
	TrackingCode  string
	Status        string
	PaymentStatus string
	CODStatus     string
	Incident      string
	ShippingFee   kernel.Money
	CODAmount     kernel.Money
	FromOfficeID  *kernel.UUID
	ToOfficeID    *kernel.UUID
	CourierID     *kernel.UUID
	CreatedAt     time.Time
	DeliveredAt   *time.Time
	History       []TrackingEvent
}

// TrackingEvent is one status change.
type TrackingEvent struct {
	From       string
	To         string
	ActorID    kernel.UUID
	ShipmentID *kernel.UUID
	Note       string
	At         time.Time
}
