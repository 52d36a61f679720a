package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin share its transaction; client code must Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ShipmentRepository() ShipmentRepository
	VehicleRepository() VehicleRepository
	SubmissionRepository() SubmissionRepository
	BatchRepository() BatchRepository
}
