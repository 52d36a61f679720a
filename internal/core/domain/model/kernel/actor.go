package kernel

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Role is the acting identity's job in the network.
type Role string

const (
	RoleCustomer    Role = "customer"
	RoleOfficeStaff Role = "office_staff"
	RoleDriver      Role = "driver"
	RoleCourier     Role = "courier"
	RoleAccountant  Role = "accountant"
	RoleManager     Role = "manager"
	RoleAdmin       Role = "admin"
	RoleSystem      Role = "system"
)

// ParseRole accepts the role names above, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleCustomer, RoleOfficeStaff, RoleDriver, RoleCourier, RoleAccountant, RoleManager, RoleAdmin, RoleSystem:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// SystemActorID is the identity recorded for changes made by scheduled jobs.
var SystemActorID = MustUUIDFromString("00000000-0000-4000-8000-000000000001")

// Actor is the caller of a core operation. It is resolved by the inbound
// adapter and passed explicitly to every command; the core trusts it as given.
type Actor struct {
	ID       UUID
	Role     Role
	OfficeID *UUID
}

// SystemActor is the identity used by background jobs.
func SystemActor() Actor {
	return Actor{ID: SystemActorID, Role: RoleSystem}
}

// Validate requires an identifier and a known role.
func (a Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	if _, err := ParseRole(string(a.Role)); err != nil {
		return err
	}
	return nil
}

// IsStaff reports depot-side roles allowed to operate on any parcel of their office.
func (a Actor) IsStaff() bool {
	switch a.Role {
	case RoleOfficeStaff, RoleManager, RoleAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

// IsReconciler reports roles allowed to check and settle cash.
func (a Actor) IsReconciler() bool {
	switch a.Role {
	case RoleAccountant, RoleManager, RoleAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

// IsManager reports roles allowed to force batch status changes.
func (a Actor) IsManager() bool {
	return a.Role == RoleManager || a.Role == RoleAdmin
}

// WorksAt reports whether the actor belongs to the office. Admin and system
// identities are not bound to an office.
func (a Actor) WorksAt(officeID UUID) bool {
	if a.Role == RoleAdmin || a.Role == RoleSystem {
		return true
	}
	return a.OfficeID != nil && a.OfficeID.IsEqual(officeID)
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID UUID) bool {
	return a.ID.IsEqual(userID)
}
