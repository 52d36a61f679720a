package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterVehicleCommandHandler_Handle(t *testing.T) {
	e := newEnv(t)
	office := kernel.NewUUID()
	id := kernel.NewUUID()

	cmd, err := commands.NewRegisterVehicleCommand(staffAt(office), id, " 51c-12345 ", office)
	require.NoError(t, err)
	require.NoError(t, commands.NewRegisterVehicleCommandHandler(e.vehicles()).Handle(t.Context(), cmd))

	v := e.vehicle(t, id)
	assert.Equal(t, "51C-12345", v.Plate())
	assert.Equal(t, office, v.OfficeID())
	assert.Equal(t, vehicle.Available, v.Status())
	assert.Nil(t, v.ShipmentID())
}

func TestRegisterVehicleCommandHandler_Handle_OtherOffice(t *testing.T) {
	cmd, err := commands.NewRegisterVehicleCommand(staffAt(kernel.NewUUID()), kernel.NewUUID(), "51C-1", kernel.NewUUID())
	require.NoError(t, err)

	err = commands.NewRegisterVehicleCommandHandler(newEnv(t).vehicles()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestNewRegisterVehicleCommand_BlankPlate(t *testing.T) {
	_, err := commands.NewRegisterVehicleCommand(staffAt(kernel.NewUUID()), kernel.NewUUID(), "   ", kernel.NewUUID())

	require.ErrorIs(t, err, commands.ErrPlateIsRequired)
}
