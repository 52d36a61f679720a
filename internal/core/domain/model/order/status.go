package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// Main line:
//
//	Draft -> Pending -> Confirmed -> ReadyForPickup -> PickingUp -> PickedUp
//	      -> InTransit -> AtDestOffice -> Delivering
//	      -> Delivered | FailedDelivery | Returning -> Returned
//
// Branches:
//
//	Draft, Pending, Confirmed        -> Cancelled
//	ReadyForPickup, PickingUp        -> AtOriginOffice (dropped at the depot)
//	Confirmed, ReadyForPickup        -> PickedUp (linked to a shipment directly)
//	AtOriginOffice                   -> PickedUp (linked to an onward shipment)
//	PickedUp, InTransit              -> Returned (shipment cancelled)
//	FailedDelivery                   -> Returning
//
// PickedUp and InTransit belong to the shipment holding the order: only
// shipment operations leave them.
//
// Delivered, Returned, Cancelled and FailedDelivery are terminal for the
// generic table. FailedDelivery may still re-enter Delivering through
// Order.RetryDelivery when the caller's retry policy allows it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is a customer-created order not yet submitted.
	Draft

	// Pending is a submitted order awaiting depot confirmation.
	// Depot-created orders start here.
	Pending

	// Confirmed means the depot accepted the order.
	Confirmed

	// ReadyForPickup means the parcel is packed and waiting at the sender.
	ReadyForPickup

	// PickingUp means a courier is on the way to the sender.
	PickingUp

	// PickedUp means the parcel is linked to a shipment and in staff hands.
	PickedUp

	// AtOriginOffice means the parcel is stored at the origin depot.
	AtOriginOffice

	// InTransit means the parcel travels between depots.
	InTransit

	// AtDestOffice means the parcel reached the destination depot.
	AtDestOffice

	// Delivering means a last-mile courier is carrying the parcel to the recipient.
	Delivering

	// Delivered is terminal: the recipient accepted the parcel.
	Delivered

	// FailedDelivery is terminal unless retried: the last-mile attempt failed.
	FailedDelivery

	// Returning means the parcel is on its way back to the sender.
	Returning

	// Returned is terminal: the parcel is back with the sender.
	Returned

	// Cancelled is terminal: the order was withdrawn before pickup.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Draft:          "draft",
		Pending:        "pending",
		Confirmed:      "confirmed",
		ReadyForPickup: "ready_for_pickup",
		PickingUp:      "picking_up",
		PickedUp:       "picked_up",
		AtOriginOffice: "at_origin_office",
		InTransit:      "in_transit",
		AtDestOffice:   "at_dest_office",
		Delivering:     "delivering",
		Delivered:      "delivered",
		FailedDelivery: "failed_delivery",
		Returning:      "returning",
		Returned:       "returned",
		Cancelled:      "cancelled",
	}
}

// transitions is the generic from -> allowed targets table. Edges that need
// extra context (retrying a failed delivery) are not listed here.
func transitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Draft:          {Pending, Cancelled},
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {ReadyForPickup, PickedUp, Cancelled},
		ReadyForPickup: {PickingUp, AtOriginOffice, PickedUp},
		PickingUp:      {AtOriginOffice, PickedUp},
		PickedUp:       {InTransit, Returned},
		AtOriginOffice: {PickedUp},
		InTransit:      {AtDestOffice, Returned},
		AtDestOffice:   {Delivering},
		Delivering:     {Delivered, FailedDelivery, Returning},
		FailedDelivery: {Returning},
		Returning:      {Returned},
	}
}

// manualTargets are the statuses depot staff may set directly. Every other
// status is reached through a shipment, last-mile or return operation.
func manualTargets() map[Status]struct{} {
	return map[Status]struct{}{
		Confirmed:      {},
		ReadyForPickup: {},
		PickingUp:      {},
		AtOriginOffice: {},
	}
}

// ParseStatus converts the persisted or wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used in storage and on the wire.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the generic table has an edge s -> to.
//
// Example:
//
//	order.Confirmed.CanTransitionTo(order.Cancelled) // true
//	order.PickedUp.CanTransitionTo(order.Cancelled)  // false
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsCancellable reports whether the order can still be withdrawn.
// Only Draft, Pending and Confirmed qualify.
func (s Status) IsCancellable() bool {
	return s.CanTransitionTo(Cancelled)
}

// IsTerminal reports statuses without outgoing edges in the generic table.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Cancelled || s == FailedDelivery
}

// IsManualTarget reports whether depot staff may request s directly.
func (s Status) IsManualTarget() bool {
	_, ok := manualTargets()[s]
	return ok
}
