package services

import (
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

// ShipmentPlanner decides which candidate orders a new shipment takes and
// where it goes.
//
// Business rules:
//   - Only orders eligible for the employee's role at the departure office qualify
//   - The destination is the first qualifying order's destination office
//   - Qualifying orders bound elsewhere, or with no destination, are left out
//
// Example usage:
//
//	plan, err := services.NewShipmentPlanner().Plan(kernel.RoleDriver, fromOffice, candidates)
//	if errors.Is(err, errs.ErrNoEligibleOrders) {
//	    // nothing to pick up
//	}
type ShipmentPlanner struct{}

func NewShipmentPlanner() ShipmentPlanner {
	return ShipmentPlanner{}
}

// Plan is the outcome of planning: the orders to link, in candidate order,
// and the shipment's destination.
type Plan struct {
	Orders     []*order.Order
	ToOfficeID kernel.UUID
	// Skipped lists candidates that were not taken.
	Skipped []kernel.UUID
}

// Plan filters candidates for a shipment run by an employee of role departing
// from fromOfficeID.
//
// Returns:
//   - ErrNoEligibleOrders when no candidate is eligible
//   - ErrNoDestination when no eligible candidate has a destination office
func (ShipmentPlanner) Plan(role kernel.Role, fromOfficeID kernel.UUID, candidates []*order.Order) (Plan, error) {
	var (
		plan     Plan
		eligible []*order.Order
	)

	for _, o := range candidates {
		if err := o.Validate(); err != nil {
			return Plan{}, err
		}
		if shipment.IsEligible(role, fromOfficeID, o) {
			eligible = append(eligible, o)
			continue
		}
		plan.Skipped = append(plan.Skipped, o.ID())
	}

	if len(eligible) == 0 {
		return Plan{}, fmt.Errorf("%w: none of %d orders can be picked up at office %s",
			errs.ErrNoEligibleOrders, len(candidates), fromOfficeID)
	}

	var destination *kernel.UUID
	for _, o := range eligible {
		if o.ToOfficeID() != nil {
			destination = o.ToOfficeID()
			break
		}
	}
	if destination == nil {
		return Plan{}, fmt.Errorf("%w: no eligible order has a destination office", errs.ErrNoDestination)
	}

	plan.ToOfficeID = *destination
	for _, o := range eligible {
		if o.ToOfficeID() != nil && o.ToOfficeID().IsEqual(*destination) {
			plan.Orders = append(plan.Orders, o)
			continue
		}
		plan.Skipped = append(plan.Skipped, o.ID())
	}

	return plan, nil
}
