package postgres_test

import (
	"testing"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(t *testing.T) ports.UnitOfWorkFactory {
	t.Helper()
	return postgres.NewGormUnitOfWorkFactory(pgtest.OpenSQLite(t))
}

func TestShipmentRepository_RoundTrip(t *testing.T) {
	ctx := t.Context()
	uow := newFactory(t).Create()
	repo := uow.ShipmentRepository()

	driver, from, to, vehicleID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewCode("SHP"), driver, kernel.RoleDriver, from, to, &vehicleID)
	require.NoError(t, err)
	first, second := kernel.NewUUID(), kernel.NewUUID()
	require.NoError(t, s.Link(first, order.ReadyForPickup))
	require.NoError(t, s.Link(second, order.AtOriginOffice))
	require.NoError(t, repo.Add(ctx, s))

	loaded, err := repo.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.Pending, loaded.Status())
	assert.Equal(t, shipment.TypeTransfer, loaded.Type())
	assert.True(t, kernel.EqualPtr(&vehicleID, loaded.VehicleID()))
	assert.ElementsMatch(t, []kernel.UUID{first, second}, loaded.OrderIDs())
	for _, l := range loaded.Links() {
		if l.OrderID.IsEqual(second) {
			assert.Equal(t, order.AtOriginOffice, l.PriorStatus)
		}
	}

	t.Run("update replaces links", func(t *testing.T) {
		_, err := loaded.Unlink(first)
		require.NoError(t, err)
		require.NoError(t, loaded.Start(driver))
		require.NoError(t, repo.Update(ctx, loaded))

		again, err := repo.GetForUpdate(ctx, s.ID())
		require.NoError(t, err)
		assert.Equal(t, shipment.InTransit, again.Status())
		assert.Equal(t, []kernel.UUID{second}, again.OrderIDs())
		assert.NotNil(t, again.StartedAt())
	})

	t.Run("missing shipment", func(t *testing.T) {
		_, err := repo.Get(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestVehicleRepository_RoundTrip(t *testing.T) {
	ctx := t.Context()
	repo := newFactory(t).Create().VehicleRepository()
	office := kernel.NewUUID()

	v, err := vehicle.NewVehicle(kernel.NewUUID(), "51c-123.45", office)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, v))

	shipmentID := kernel.NewUUID()
	loaded, err := repo.GetForUpdate(ctx, v.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Acquire(shipmentID, office))
	require.NoError(t, repo.Update(ctx, loaded))

	inUse, err := repo.Get(ctx, v.ID())
	require.NoError(t, err)
	assert.Equal(t, "51C-123.45", inUse.Plate())
	assert.Equal(t, vehicle.InUse, inUse.Status())
	assert.True(t, kernel.EqualPtr(&shipmentID, inUse.ShipmentID()))

	require.NoError(t, inUse.Release(shipmentID))
	require.NoError(t, repo.Update(ctx, inUse))

	free, err := repo.Get(ctx, v.ID())
	require.NoError(t, err)
	assert.Equal(t, vehicle.Available, free.Status())
	assert.Nil(t, free.ShipmentID())
}

func TestSubmissionAndBatchRepositories(t *testing.T) {
	ctx := t.Context()
	uow := newFactory(t).Create()
	records := uow.SubmissionRepository()
	batches := uow.BatchRepository()
	courier := kernel.NewUUID()
	orderID := kernel.NewUUID()

	var members []*collection.Submission
	for _, amount := range []int64{30000, 20000} {
		s, err := collection.NewSubmission(kernel.NewUUID(), kernel.NewCode("PS"), orderID, courier,
			collection.KindCOD, kernel.MoneyFromInt(amount), kernel.MoneyFromInt(amount), "")
		require.NoError(t, err)
		require.NoError(t, records.Add(ctx, s))
		members = append(members, s)
	}

	byOrder, err := records.ListByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Len(t, byOrder, 2)

	locked, err := records.ListForUpdate(ctx, []kernel.UUID{members[0].ID(), members[1].ID(), kernel.NewUUID()})
	require.NoError(t, err)
	require.Len(t, locked, 2)
	for _, s := range locked {
		require.NoError(t, s.SubmitActual(s.SystemAmount()))
	}

	b, err := batch.NewBatch(kernel.NewUUID(), kernel.NewCode("BAT"), courier, locked, "")
	require.NoError(t, err)
	for _, s := range locked {
		require.NoError(t, records.Update(ctx, s))
	}
	require.NoError(t, batches.Add(ctx, b))

	loaded, err := batches.Get(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, batch.Pending, loaded.Status())
	assert.True(t, loaded.TotalSystem().Equal(kernel.MoneyFromInt(50000)))
	assert.ElementsMatch(t, b.MemberIDs(), loaded.MemberIDs())

	inBatch, err := records.ListByBatch(ctx, b.ID())
	require.NoError(t, err)
	assert.Len(t, inBatch, 2)
	for _, s := range inBatch {
		assert.Equal(t, collection.InBatch, s.Status())
	}

	ids, err := batches.ListIDsByStatus(ctx, batch.Pending)
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{b.ID()}, ids)

	ids, err = batches.ListIDsByStatus(ctx, batch.Partial)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSubmissionRepository_NegativeAmounts(t *testing.T) {
	ctx := t.Context()
	repo := newFactory(t).Create().SubmissionRepository()

	refund, err := collection.NewRefund(kernel.NewUUID(), kernel.NewCode("PS"), kernel.NewUUID(), kernel.NewUUID(),
		kernel.MoneyFromInt(50000), "returned")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, refund))

	loaded, err := repo.Get(ctx, refund.ID())
	require.NoError(t, err)
	assert.Equal(t, "-50000", loaded.SystemAmount().String())
	assert.True(t, loaded.IsRefund())
	assert.Equal(t, collection.Adjusted, loaded.Status())
}
