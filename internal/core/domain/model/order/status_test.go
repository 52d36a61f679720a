package order_test

import (
	"testing"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Draft, order.Pending, order.Confirmed, order.ReadyForPickup, order.PickingUp,
	order.PickedUp, order.AtOriginOffice, order.InTransit, order.AtDestOffice, order.Delivering,
	order.Delivered, order.FailedDelivery, order.Returning, order.Returned, order.Cancelled,
}

func TestStatus_StringAndParse(t *testing.T) {
	t.Run("should round trip every status name", func(t *testing.T) {
		for _, s := range allStatuses {
			parsed, err := order.ParseStatus(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("lost")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should render out of range values as unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Status(99).String())
		require.Error(t, order.Status(99).Validate())
		require.Error(t, order.Unknown.Validate())
	})
}

func TestStatus_IsCancellable(t *testing.T) {
	t.Run("should allow cancel exactly from draft, pending and confirmed", func(t *testing.T) {
		cancellable := map[order.Status]bool{order.Draft: true, order.Pending: true, order.Confirmed: true}

		for _, s := range allStatuses {
			assert.Equal(t, cancellable[s], s.IsCancellable(), s.String())
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should follow the main line", func(t *testing.T) {
		line := []order.Status{
			order.Draft, order.Pending, order.Confirmed, order.ReadyForPickup, order.PickingUp,
			order.PickedUp, order.InTransit, order.AtDestOffice, order.Delivering, order.Delivered,
		}
		for i := 0; i < len(line)-1; i++ {
			assert.True(t, line[i].CanTransitionTo(line[i+1]), "%s -> %s", line[i], line[i+1])
		}
	})

	t.Run("should not skip states", func(t *testing.T) {
		assert.False(t, order.Draft.CanTransitionTo(order.Confirmed))
		assert.False(t, order.PickedUp.CanTransitionTo(order.AtDestOffice))
		assert.False(t, order.AtDestOffice.CanTransitionTo(order.Delivered))
	})

	t.Run("should keep terminal statuses closed except failed delivery returning", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Returned, order.Cancelled} {
			for _, to := range allStatuses {
				assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
		assert.True(t, order.FailedDelivery.CanTransitionTo(order.Returning))
		assert.False(t, order.FailedDelivery.CanTransitionTo(order.Delivering))
	})

	t.Run("should allow shipment cancellation to return parcels", func(t *testing.T) {
		assert.True(t, order.PickedUp.CanTransitionTo(order.Returned))
		assert.True(t, order.InTransit.CanTransitionTo(order.Returned))
		assert.False(t, order.AtDestOffice.CanTransitionTo(order.Returned))
	})
}

func TestStatus_ShipmentOwned(t *testing.T) {
	t.Run("should leave picked up only through the shipment", func(t *testing.T) {
		for _, to := range allStatuses {
			if to.IsManualTarget() {
				assert.False(t, order.PickedUp.CanTransitionTo(to), "picked_up -> %s", to)
				assert.False(t, order.InTransit.CanTransitionTo(to), "in_transit -> %s", to)
			}
		}
	})

	t.Run("should receive parcels at the origin depot before pickup", func(t *testing.T) {
		assert.True(t, order.ReadyForPickup.CanTransitionTo(order.AtOriginOffice))
		assert.True(t, order.PickingUp.CanTransitionTo(order.AtOriginOffice))
		assert.True(t, order.AtOriginOffice.CanTransitionTo(order.PickedUp))
	})
}
