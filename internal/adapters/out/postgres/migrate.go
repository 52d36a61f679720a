package postgres

import (
	"logistics/internal/adapters/out/postgres/batchrepo"
	"logistics/internal/adapters/out/postgres/collectionrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.LinkDTO{},
		&vehiclerepo.VehicleDTO{},
		&collectionrepo.SubmissionDTO{},
		&batchrepo.BatchDTO{},
	}
}

// Migrate creates or alters the tables to match the current DTOs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
