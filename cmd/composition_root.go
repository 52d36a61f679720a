package cmd

import (
	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/fee"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/queue"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	queue      *queue.Client
	fees       ports.FeeOracle
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (CompositionRoot, error) {
	tariff, err := cfg.Tariff.ToTariff(cfg.Money.Scale)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		queue:      queue.NewClient(cfg.Queue.ToQueueConfig()),
		fees:       fee.NewTariffOracle(tariff),
		logger:     logger,
	}, nil
}

// Close releases the queue connection.
func (c *CompositionRoot) Close() error {
	return c.queue.Close()
}

func (c *CompositionRoot) orders() commands.OrderUoWFactory {
	return commands.FactoryFunc[commands.OrderUoW](func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledger() commands.LedgerUoWFactory {
	return commands.FactoryFunc[commands.LedgerUoW](func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipments() commands.ShipmentUoWFactory {
	return commands.FactoryFunc[commands.ShipmentUoW](func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) vehicles() commands.VehicleUoWFactory {
	return commands.FactoryFunc[commands.VehicleUoW](func() commands.VehicleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) batches() commands.BatchUoWFactory {
	return commands.FactoryFunc[commands.BatchUoW](func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notices() commands.NoticeSender {
	return commands.NewNoticeSender(c.queue, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orders(), c.fees)
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	return commands.NewEditOrderCommandHandler(c.orders(), c.fees)
}

func (c *CompositionRoot) CreateRetryDeliveryCommandHandler() commands.RetryDeliveryCommandHandler {
	return commands.NewRetryDeliveryCommandHandler(c.orders(), c.cfg.Order.AllowDeliveryRetry)
}

func (c *CompositionRoot) CreateFinishShipmentCommandHandler() commands.FinishShipmentCommandHandler {
	return commands.NewFinishShipmentCommandHandler(c.shipments(), c.queue, c.logger)
}

func (c *CompositionRoot) CreateSubmitForBatchingCommandHandler() commands.SubmitForBatchingCommandHandler {
	return commands.NewSubmitForBatchingCommandHandler(c.ledger(), c.cfg.Money.Scale)
}

func (c *CompositionRoot) CreateReconcilePartialBatchesCommandHandler() commands.ReconcilePartialBatchesCommandHandler {
	return commands.NewReconcilePartialBatchesCommandHandler(c.batches(), c.notices())
}

// HTTPHandlers wires every use case exposed over HTTP.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	notices := c.notices()

	return httpin.Handlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		AdvanceOrder:     commands.NewAdvanceOrderToPendingCommandHandler(c.orders()),
		CancelOrder:      commands.NewCancelOrderCommandHandler(c.orders()),
		TransitionOrder:  commands.NewTransitionOrderCommandHandler(c.orders()),
		EditOrder:        c.CreateEditOrderCommandHandler(),
		StartDelivery:    commands.NewStartDeliveryCommandHandler(c.orders(), notices),
		CompleteDelivery: commands.NewCompleteDeliveryCommandHandler(c.ledger(), notices),
		FailDelivery:     commands.NewFailDeliveryCommandHandler(c.orders(), notices),
		RetryDelivery:    c.CreateRetryDeliveryCommandHandler(),
		StartReturn:      commands.NewStartReturnCommandHandler(c.orders()),
		CompleteReturn:   commands.NewCompleteReturnCommandHandler(c.ledger(), notices),

		CreateShipment:          commands.NewCreateShipmentCommandHandler(c.shipments()),
		AddOrdersToShipment:     commands.NewAddOrdersToShipmentCommandHandler(c.shipments()),
		RemoveOrderFromShipment: commands.NewRemoveOrderFromShipmentCommandHandler(c.shipments()),
		StartShipment:           commands.NewStartShipmentCommandHandler(c.shipments()),
		FinishShipment:          c.CreateFinishShipmentCommandHandler(),
		RegisterVehicle:         commands.NewRegisterVehicleCommandHandler(c.vehicles()),

		CollectCash:       commands.NewCollectCashCommandHandler(c.ledger()),
		SubmitForBatching: c.CreateSubmitForBatchingCommandHandler(),
		CreateBatch:       commands.NewCreateBatchCommandHandler(c.batches()),
		StartChecking:     commands.NewStartCheckingCommandHandler(c.batches()),
		CompleteBatch:     commands.NewCompleteBatchCommandHandler(c.batches(), notices),
		ChangeBatchStatus: commands.NewChangeBatchStatusCommandHandler(c.batches(), notices),
		AdjustRecord:      commands.NewAdjustRecordCommandHandler(c.ledger()),

		GetOrderTracking: queries.NewGetOrderTrackingQueryHandler(c.gormDB),
		GetBatch:         queries.NewGetBatchQueryHandler(c.gormDB),
		GetOpenRecords:   queries.NewGetOpenRecordsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) HTTPServer() *httpin.Server {
	return httpin.NewServer(c.HTTPHandlers(), c.logger)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewPartialBatchReconciliationJob(
			c.CreateReconcilePartialBatchesCommandHandler(),
			c.cfg.Jobs.PartialBatchSchedule,
			c.cfg.Jobs.Timeout,
			c.logger,
		),
	)
}
