package commands

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// authorizeOrder lets the owning customer act on their order and staff act on
// orders of their office. An order with no office yet is open to any staff.
func authorizeOrder(action string, actor kernel.Actor, o *order.Order) error {
	if actor.Role == kernel.RoleCustomer {
		if actor.Is(o.OwnerID()) {
			return nil
		}
		return errs.NewUnauthorizedError(action, actor.ID)
	}
	return authorizeStaffOnOrder(action, actor, o)
}

func authorizeStaffOnOrder(action string, actor kernel.Actor, o *order.Order) error {
	if !actor.IsStaff() {
		return errs.NewUnauthorizedError(action, actor.ID)
	}
	from, to := o.FromOfficeID(), o.ToOfficeID()
	if from == nil && to == nil {
		return nil
	}
	if (from != nil && actor.WorksAt(*from)) || (to != nil && actor.WorksAt(*to)) {
		return nil
	}
	return errs.NewUnauthorizedError(action, actor.ID)
}

// authorizeLastMile lets the assigned courier or destination staff act on a
// parcel out for delivery.
func authorizeLastMile(action string, actor kernel.Actor, o *order.Order) error {
	if actor.Role == kernel.RoleCourier {
		if c := o.CourierID(); c != nil && actor.Is(*c) {
			return nil
		}
		return errs.NewUnauthorizedError(action, actor.ID)
	}
	return authorizeStaffOnOrder(action, actor, o)
}

func authorizeStaffAt(action string, actor kernel.Actor, officeID kernel.UUID) error {
	if actor.IsStaff() && actor.WorksAt(officeID) {
		return nil
	}
	return errs.NewUnauthorizedError(action, actor.ID)
}

func authorizeReconciler(action string, actor kernel.Actor) error {
	if actor.IsReconciler() {
		return nil
	}
	return errs.NewUnauthorizedError(action, actor.ID)
}

// authorizeCourierOrReconciler lets couriers handle their own cash.
func authorizeCourierOrReconciler(action string, actor kernel.Actor, courierID kernel.UUID) error {
	if actor.IsReconciler() || (actor.Role == kernel.RoleCourier && actor.Is(courierID)) {
		return nil
	}
	return errs.NewUnauthorizedError(action, actor.ID)
}
