package shipment

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// Relation is how the shipment's departure office relates to an order.
type Relation int

const (
	RelationNone Relation = iota
	// RelationOrigin: the shipment leaves from the order's origin office.
	RelationOrigin
	// RelationDestination: the shipment leaves from the order's destination office.
	RelationDestination
)

type eligibilityKey struct {
	role     kernel.Role
	relation Relation
}

// eligibility whitelists the order statuses a shipment may pick up, keyed by
// the employee's role and the relation to the order's offices.
var eligibility = map[eligibilityKey]map[order.Status]struct{}{
	{kernel.RoleDriver, RelationOrigin}: {
		order.ReadyForPickup: {},
		order.PickingUp:      {},
		order.AtOriginOffice: {},
	},
	{kernel.RoleCourier, RelationOrigin}: {
		order.Confirmed:      {},
		order.ReadyForPickup: {},
		order.PickingUp:      {},
	},
	{kernel.RoleCourier, RelationDestination}: {
		order.AtOriginOffice: {},
	},
}

// RelationOf places an order relative to a departure office. Origin wins when
// both offices are the same.
func RelationOf(fromOfficeID kernel.UUID, o *order.Order) Relation {
	switch {
	case o.FromOfficeID() != nil && o.FromOfficeID().IsEqual(fromOfficeID):
		return RelationOrigin
	case o.ToOfficeID() != nil && o.ToOfficeID().IsEqual(fromOfficeID):
		return RelationDestination
	default:
		return RelationNone
	}
}

// IsEligible reports whether an employee of the given role departing from
// fromOfficeID may pick up the order in its current status.
func IsEligible(role kernel.Role, fromOfficeID kernel.UUID, o *order.Order) bool {
	statuses, ok := eligibility[eligibilityKey{role, RelationOf(fromOfficeID, o)}]
	if !ok {
		return false
	}
	_, ok = statuses[o.Status()]
	return ok
}

// TypeFor returns the shipment type implied by the employee role.
func TypeFor(role kernel.Role) Type {
	switch role {
	case kernel.RoleDriver:
		return TypeTransfer
	case kernel.RoleCourier:
		return TypeDelivery
	default:
		return TypeUnknown
	}
}
