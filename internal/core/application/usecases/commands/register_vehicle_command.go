package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrRegisterVehicleCommandIsNotConstructed = errors.New(
		"RegisterVehicleCommand must be created via NewRegisterVehicleCommand constructor",
	)
	ErrPlateIsRequired = errs.NewValueIsRequiredError("plate")
)

// RegisterVehicleCommand adds a vehicle to an office's pool.
//
// Example:
//
//	vehicleID := kernel.NewUUID()
//	cmd, err := NewRegisterVehicleCommand(manager, vehicleID, "51C-123.45", officeID)
//	if err != nil {
//	    return fmt.Errorf("invalid vehicle data: %w", err)
//	}
type RegisterVehicleCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	vehicleID kernel.UUID
	plate     string
	officeID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewRegisterVehicleCommand(actor kernel.Actor, vehicleID kernel.UUID, plate string, officeID kernel.UUID) (RegisterVehicleCommand, error) {
	cmd := RegisterVehicleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		vehicleID.Validate(),
		officeID.Validate(),
		cmd.setPlate(plate),
	); err != nil {
		return RegisterVehicleCommand{}, err
	}

	cmd.actor = actor
	cmd.vehicleID = vehicleID
	cmd.officeID = officeID
	return cmd, nil
}

func (c RegisterVehicleCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVehicleCommandIsNotConstructed)
}

func (c RegisterVehicleCommand) Actor() kernel.Actor    { return c.actor }
func (c RegisterVehicleCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c RegisterVehicleCommand) Plate() string          { return c.plate }
func (c RegisterVehicleCommand) OfficeID() kernel.UUID  { return c.officeID }

func (c *RegisterVehicleCommand) setPlate(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return ErrPlateIsRequired
	}
	c.plate = plate
	return nil
}
