package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderToPendingCommandHandler_Handle(t *testing.T) {
	e := newEnv(t)
	actor := customer()
	o := newCustomerOrder(t, actor.ID, parcel{})
	e.store(t, o)
	h := commands.NewAdvanceOrderToPendingCommandHandler(e.orders())

	cmd, err := commands.NewAdvanceOrderToPendingCommand(actor, o.ID())
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, order.Pending, e.order(t, o.ID()).Status())

	// second submit has nothing to advance
	err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestTransitionOrderCommandHandler_Handle_PickupSide(t *testing.T) {
	e := newEnv(t)
	office := kernel.NewUUID()
	staff := staffAt(office)
	o := newDepotOrder(t, parcel{from: &office}, 15000)
	e.store(t, o)
	h := commands.NewTransitionOrderCommandHandler(e.orders())

	for _, to := range []order.Status{order.Confirmed, order.ReadyForPickup, order.PickingUp} {
		cmd, err := commands.NewTransitionOrderCommand(staff, o.ID(), to, "step "+to.String())
		require.NoError(t, err)
		require.NoError(t, h.Handle(t.Context(), cmd), to.String())
	}

	stored := e.order(t, o.ID())
	assert.Equal(t, order.PickingUp, stored.Status())

	history := e.history(t, o.ID())
	require.Len(t, history, 4, "creation plus three moves")
	assert.Equal(t, "step picking_up", history[3].Note)
}

func TestTransitionOrderCommandHandler_Handle_Rejected(t *testing.T) {
	office := kernel.NewUUID()

	cases := map[string]struct {
		actor kernel.Actor
		to    order.Status
		err   error
	}{
		"dedicated operation target": {actor: staffAt(office), to: order.Delivered, err: errs.ErrInvalidTransition},
		"skips confirmation":         {actor: staffAt(office), to: order.ReadyForPickup, err: errs.ErrInvalidTransition},
		"staff of another office":    {actor: staffAt(kernel.NewUUID()), to: order.Confirmed, err: errs.ErrUnauthorized},
		"customer":                   {actor: customer(), to: order.Confirmed, err: errs.ErrUnauthorized},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t)
			o := newDepotOrder(t, parcel{from: &office}, 15000)
			e.store(t, o)

			cmd, err := commands.NewTransitionOrderCommand(tc.actor, o.ID(), tc.to, "")
			require.NoError(t, err)

			err = commands.NewTransitionOrderCommandHandler(e.orders()).Handle(t.Context(), cmd)

			require.ErrorIs(t, err, tc.err)
			assert.Equal(t, order.Pending, e.order(t, o.ID()).Status())
		})
	}
}

func TestNewTransitionOrderCommand_UnknownTarget(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(staffAt(kernel.NewUUID()), kernel.NewUUID(), order.Unknown, "")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
