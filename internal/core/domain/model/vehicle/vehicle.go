// Package vehicle provides the Vehicle aggregate, a single-holder resource
// claimed by a shipment while it is open.
package vehicle

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

type Status int

const (
	StatusUnknown Status = iota
	Available
	InUse
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case InUse:
		return "in_use"
	default:
		return "unknown"
	}
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "available":
		return Available, nil
	case "in_use":
		return InUse, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid vehicle status", s))
	}
}

// Vehicle belongs to one office. While InUse it is held by exactly one shipment.
type Vehicle struct {
	id         kernel.UUID
	plate      string
	officeID   kernel.UUID
	status     Status
	shipmentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewVehicle registers an available vehicle at an office.
func NewVehicle(id kernel.UUID, plate string, officeID kernel.UUID) (*Vehicle, error) {
	v := &Vehicle{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setPlate(plate),
		v.setOffice(officeID),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle rebuilds a vehicle from storage.
func RestoreVehicle(id kernel.UUID, plate string, officeID kernel.UUID, status Status, shipmentID *kernel.UUID) (*Vehicle, error) {
	v := &Vehicle{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setPlate(plate),
		v.setOffice(officeID),
	); err != nil {
		return nil, err
	}

	switch {
	case status == Available && shipmentID == nil, status == InUse && shipmentID != nil:
		v.status = status
	default:
		return nil, errs.NewInconsistentStateError("vehicle", id, "status "+status.String()+" disagrees with its holding shipment")
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID          { return v.id }
func (v *Vehicle) Plate() string            { return v.plate }
func (v *Vehicle) OfficeID() kernel.UUID    { return v.officeID }
func (v *Vehicle) Status() Status           { return v.status }
func (v *Vehicle) ShipmentID() *kernel.UUID { return v.shipmentID }

// Acquire hands the vehicle to a shipment departing from officeID.
//
// Returns:
//   - ErrVehicleUnavailable when another shipment holds it
//   - ErrUnauthorized when it belongs to a different office
func (v *Vehicle) Acquire(shipmentID, officeID kernel.UUID) error {
	if !v.officeID.IsEqual(officeID) {
		return fmt.Errorf("%w: vehicle %s belongs to office %s", errs.ErrUnauthorized, v.plate, v.officeID)
	}
	if v.status != Available {
		return fmt.Errorf("%w: vehicle %s is %s", errs.ErrVehicleUnavailable, v.plate, v.status)
	}
	v.status = InUse
	v.shipmentID = &shipmentID
	return nil
}

// Release frees the vehicle. Only the holding shipment may release it.
func (v *Vehicle) Release(shipmentID kernel.UUID) error {
	if v.status != InUse || v.shipmentID == nil || !v.shipmentID.IsEqual(shipmentID) {
		return errs.NewInconsistentStateError("vehicle", v.id, "is not held by shipment "+shipmentID.String())
	}
	v.status = Available
	v.shipmentID = nil
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlate(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return errs.NewValueIsRequiredError("plate")
	}
	v.plate = plate
	return nil
}

func (v *Vehicle) setOffice(officeID kernel.UUID) error {
	if err := officeID.Validate(); err != nil {
		return err
	}
	v.officeID = officeID
	return nil
}
