package commands_test

import (
	"testing"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/pgtest"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func customer() kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleCustomer}
}

func staffAt(office kernel.UUID) kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleOfficeStaff, OfficeID: &office}
}

func courierAt(office kernel.UUID) kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleCourier, OfficeID: &office}
}

func driverAt(office kernel.UUID) kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleDriver, OfficeID: &office}
}

func accountant() kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleAccountant}
}

func manager() kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleManager}
}

type parcel struct {
	from, to *kernel.UUID
	cod      int64
	payer    order.Payer
}

func parcelDetails(t *testing.T, p parcel) order.Details {
	t.Helper()

	sender, err := kernel.NewContact("Shop", "0281234567", kernel.Address{Line: "1 Main", Region: "south"})
	require.NoError(t, err)
	recipient, err := kernel.NewContact("Lan", "0901234567", kernel.Address{Line: "2 Side", Region: "north"})
	require.NoError(t, err)
	if p.payer == order.PayerUnknown {
		p.payer = order.PayerCustomer
	}

	return order.Details{
		Sender:       sender,
		Recipient:    recipient,
		Weight:       decimal.NewFromInt(2),
		CODAmount:    kernel.MoneyFromInt(p.cod),
		ServiceType:  "standard",
		Payer:        p.payer,
		FromOfficeID: p.from,
		ToOfficeID:   p.to,
	}
}

func newDepotOrder(t *testing.T, p parcel, fee int64) *order.Order {
	t.Helper()

	owner := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewCode("ORD"), order.CreatorDepot, owner, owner,
		parcelDetails(t, p), kernel.MoneyFromInt(fee))
	require.NoError(t, err)
	return o
}

// env runs handlers against an in-memory database through the real unit of work.
type env struct {
	gorm ports.UnitOfWorkFactory
}

func newEnv(t *testing.T) env {
	t.Helper()
	return env{gorm: postgres.NewGormUnitOfWorkFactory(pgtest.OpenSQLite(t))}
}

func (e env) orders() commands.OrderUoWFactory {
	return commands.FactoryFunc[commands.OrderUoW](func() commands.OrderUoW { return e.gorm.Create() })
}

func (e env) ledger() commands.LedgerUoWFactory {
	return commands.FactoryFunc[commands.LedgerUoW](func() commands.LedgerUoW { return e.gorm.Create() })
}

func (e env) shipments() commands.ShipmentUoWFactory {
	return commands.FactoryFunc[commands.ShipmentUoW](func() commands.ShipmentUoW { return e.gorm.Create() })
}

func (e env) vehicles() commands.VehicleUoWFactory {
	return commands.FactoryFunc[commands.VehicleUoW](func() commands.VehicleUoW { return e.gorm.Create() })
}

func (e env) batches() commands.BatchUoWFactory {
	return commands.FactoryFunc[commands.BatchUoW](func() commands.BatchUoW { return e.gorm.Create() })
}

// store persists an order outside any command.
func (e env) store(t *testing.T, o *order.Order) {
	t.Helper()
	require.NoError(t, e.gorm.Create().OrderRepository().Add(t.Context(), o))
}

func (e env) order(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := e.gorm.Create().OrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return o
}

func (e env) history(t *testing.T, id kernel.UUID) []order.HistoryEntry {
	t.Helper()
	entries, err := e.gorm.Create().OrderRepository().History(t.Context(), id)
	require.NoError(t, err)
	return entries
}

// silent drops every notice.
var silent = commands.NewNoticeSender(nil, nil)

func money(v int64) *kernel.Money {
	m := kernel.MoneyFromInt(v)
	return &m
}

func (e env) shipment(t *testing.T, id kernel.UUID) *shipment.Shipment {
	t.Helper()
	s, err := e.gorm.Create().ShipmentRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return s
}

func (e env) vehicle(t *testing.T, id kernel.UUID) *vehicle.Vehicle {
	t.Helper()
	v, err := e.gorm.Create().VehicleRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return v
}

func (e env) records(t *testing.T, orderID kernel.UUID) []*collection.Submission {
	t.Helper()
	records, err := e.gorm.Create().SubmissionRepository().ListByOrder(t.Context(), orderID)
	require.NoError(t, err)
	return records
}

func (e env) record(t *testing.T, id kernel.UUID) *collection.Submission {
	t.Helper()
	r, err := e.gorm.Create().SubmissionRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return r
}

func (e env) batch(t *testing.T, id kernel.UUID) *batch.Batch {
	t.Helper()
	b, err := e.gorm.Create().BatchRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return b
}

// readyOrder stores a depot order and walks it to ready_for_pickup.
func (e env) readyOrder(t *testing.T, staff kernel.Actor, p parcel) *order.Order {
	t.Helper()

	o := newDepotOrder(t, p, 15000)
	e.store(t, o)

	h := commands.NewTransitionOrderCommandHandler(e.orders())
	for _, to := range []order.Status{order.Confirmed, order.ReadyForPickup} {
		cmd, err := commands.NewTransitionOrderCommand(staff, o.ID(), to, "")
		require.NoError(t, err)
		require.NoError(t, h.Handle(t.Context(), cmd))
	}
	return e.order(t, o.ID())
}

func (e env) registerVehicle(t *testing.T, staff kernel.Actor, office kernel.UUID) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterVehicleCommand(staff, id, "51c-"+id.String()[:5], office)
	require.NoError(t, err)
	require.NoError(t, commands.NewRegisterVehicleCommandHandler(e.vehicles()).Handle(t.Context(), cmd))
	return id
}

// leg creates a driver shipment from origin for orderIDs and returns its id.
func (e env) leg(t *testing.T, driver kernel.Actor, origin kernel.UUID, vehicleID *kernel.UUID, orderIDs ...kernel.UUID) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(driver, id, orderIDs, vehicleID, origin, driver.ID, kernel.RoleDriver)
	require.NoError(t, err)
	require.NoError(t, commands.NewCreateShipmentCommandHandler(e.shipments()).Handle(t.Context(), cmd))
	return id
}

// arrivedOrder moves a fresh order from origin to dest through a completed
// driver shipment.
func (e env) arrivedOrder(t *testing.T, origin, dest kernel.UUID, p parcel) *order.Order {
	t.Helper()

	p.from, p.to = &origin, &dest
	o := e.readyOrder(t, staffAt(origin), p)
	driver := driverAt(origin)
	shipmentID := e.leg(t, driver, origin, nil, o.ID())

	start, err := commands.NewStartShipmentCommand(driver, shipmentID)
	require.NoError(t, err)
	require.NoError(t, commands.NewStartShipmentCommandHandler(e.shipments()).Handle(t.Context(), start))

	finish, err := commands.NewFinishShipmentCommand(driver, shipmentID, shipment.Completed)
	require.NoError(t, err)
	require.NoError(t, commands.NewFinishShipmentCommandHandler(e.shipments(), nil, nil).Handle(t.Context(), finish))

	return e.order(t, o.ID())
}

// deliveringOrder hands an arrived order to courier.
func (e env) deliveringOrder(t *testing.T, courier kernel.Actor, p parcel) *order.Order {
	t.Helper()

	origin, dest := kernel.NewUUID(), *courier.OfficeID
	o := e.arrivedOrder(t, origin, dest, p)

	cmd, err := commands.NewStartDeliveryCommand(staffAt(dest), o.ID(), courier.ID)
	require.NoError(t, err)
	require.NoError(t, commands.NewStartDeliveryCommandHandler(e.orders(), silent).Handle(t.Context(), cmd))

	return e.order(t, o.ID())
}

// deliveredOrder runs the last mile to a successful hand-over.
func (e env) deliveredOrder(t *testing.T, courier kernel.Actor, p parcel) *order.Order {
	t.Helper()

	o := e.deliveringOrder(t, courier, p)
	cmd, err := commands.NewCompleteDeliveryCommand(courier, o.ID())
	require.NoError(t, err)
	require.NoError(t, commands.NewCompleteDeliveryCommandHandler(e.ledger(), silent).Handle(t.Context(), cmd))

	return e.order(t, o.ID())
}
