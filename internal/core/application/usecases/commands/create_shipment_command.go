package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand opens a transport leg from an office for a driver or
// courier and picks up the eligible candidate orders.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(staff, kernel.NewUUID(), orderIDs, &vehicleID,
//	    officeID, driverID, kernel.RoleDriver)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	shipmentID   kernel.UUID
	orderIDs     []kernel.UUID
	vehicleID    *kernel.UUID
	fromOfficeID kernel.UUID
	employeeID   kernel.UUID
	employeeRole kernel.Role

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	actor kernel.Actor,
	shipmentID kernel.UUID,
	orderIDs []kernel.UUID,
	vehicleID *kernel.UUID,
	fromOfficeID kernel.UUID,
	employeeID kernel.UUID,
	employeeRole kernel.Role,
) (CreateShipmentCommand, error) {
	var roleErr error
	if employeeRole != kernel.RoleDriver && employeeRole != kernel.RoleCourier {
		roleErr = errs.NewValueIsInvalidError("employeeRole")
	}

	var vehicleErr error
	if vehicleID != nil {
		vehicleErr = vehicleID.Validate()
	}

	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		validateIDs("orderIDs", orderIDs),
		vehicleErr,
		fromOfficeID.Validate(),
		employeeID.Validate(),
		roleErr,
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return CreateShipmentCommand{
		actor:        actor,
		shipmentID:   shipmentID,
		orderIDs:     uniqueIDs(orderIDs),
		vehicleID:    vehicleID,
		fromOfficeID: fromOfficeID,
		employeeID:   employeeID,
		employeeRole: employeeRole,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Actor() kernel.Actor       { return c.actor }
func (c CreateShipmentCommand) ShipmentID() kernel.UUID   { return c.shipmentID }
func (c CreateShipmentCommand) VehicleID() *kernel.UUID   { return c.vehicleID }
func (c CreateShipmentCommand) FromOfficeID() kernel.UUID { return c.fromOfficeID }
func (c CreateShipmentCommand) EmployeeID() kernel.UUID   { return c.employeeID }
func (c CreateShipmentCommand) EmployeeRole() kernel.Role { return c.employeeRole }

func (c CreateShipmentCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

// validateIDs requires a non-empty list of valid identifiers.
func validateIDs(paramName string, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError(paramName)
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(paramName, err)
		}
	}
	return nil
}

// uniqueIDs drops repeated identifiers and keeps first occurrences in order.
func uniqueIDs(ids []kernel.UUID) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(ids))
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
