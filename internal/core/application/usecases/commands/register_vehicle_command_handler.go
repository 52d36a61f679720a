package commands

import (
	"context"

	"logistics/internal/core/domain/model/vehicle"
)

// RegisterVehicleCommandHandler stores a new available vehicle.
// Staff may register vehicles only for their own office.
type RegisterVehicleCommandHandler struct {
	uowFactory VehicleUoWFactory
}

func NewRegisterVehicleCommandHandler(uowFactory VehicleUoWFactory) RegisterVehicleCommandHandler {
	return RegisterVehicleCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterVehicleCommandHandler) Handle(ctx context.Context, cmd RegisterVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := authorizeStaffAt("register vehicle", cmd.Actor(), cmd.OfficeID()); err != nil {
		return err
	}

	v, err := vehicle.NewVehicle(cmd.VehicleID(), cmd.Plate(), cmd.OfficeID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.VehicleRepository().Add(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
