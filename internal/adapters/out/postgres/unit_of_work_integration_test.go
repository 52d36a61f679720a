package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "logistics/internal/adapters/out/postgres"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite checks transaction boundaries across
// repositories against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE orders, order_histories, shipments, shipment_orders,
		vehicles, payment_submissions, payment_submission_batches`).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitSpansRepositories() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	record := suite.newRecord(o.ID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.SubmissionRepository().Add(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = reader.SubmissionRepository().Get(ctx, record.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEveryWrite() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "29A-00001", kernel.NewUUID())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, v))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.VehicleRepository().Get(ctx, v.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var count int64
	suite.Require().NoError(suite.db.Table("order_histories").Count(&count).Error)
	suite.Zero(count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TracksWrites() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))

	gormUoW, ok := uow.(*postgres_adapter.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Equal(2, gormUoW.TrackedCount())

	suite.Require().NoError(uow.Rollback(ctx))
	suite.Zero(gormUoW.TrackedCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransactionWritesImmediately() {
	ctx := suite.T().Context()
	o := suite.newOrder()

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	sender, err := kernel.NewContact("Shop", "0281234567", kernel.Address{Line: "1 Main", Region: "south"})
	suite.Require().NoError(err)
	recipient, err := kernel.NewContact("Lan", "0901234567", kernel.Address{Line: "2 Side", Region: "north"})
	suite.Require().NoError(err)
	owner := kernel.NewUUID()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewCode("ORD"), order.CreatorCustomer, owner, owner, order.Details{
		Sender:      sender,
		Recipient:   recipient,
		Weight:      decimal.NewFromInt(1),
		ServiceType: "standard",
		Payer:       order.PayerCustomer,
	}, kernel.MoneyFromInt(15000))
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newRecord(orderID kernel.UUID) *collection.Submission {
	s, err := collection.NewSubmission(kernel.NewUUID(), kernel.NewCode("PS"), orderID, kernel.NewUUID(),
		collection.KindFee, kernel.MoneyFromInt(15000), kernel.MoneyFromInt(15000), "")
	suite.Require().NoError(err)
	return s
}
