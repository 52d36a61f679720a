// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load and lock aggregates, apply domain rules, persist, commit.
// Notifications and hooks run after the commit and never undo it.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces give each handler exactly the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	SubmissionRepoFactory interface {
		SubmissionRepository() ports.SubmissionRepository
	}

	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// OrderUoW covers operations that touch a single order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LedgerUoW covers last-mile and cash operations: an order together with
	// its collection records.
	LedgerUoW interface {
		TxManager
		OrderRepoFactory
		SubmissionRepoFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// ShipmentUoW covers shipment operations, which move orders and vehicles
	// and may settle returned parcels.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
	//   orders, err := uow.OrderRepository().ListForUpdate(ctx, s.OrderIDs())
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ShipmentUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
		VehicleRepoFactory
		SubmissionRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	VehicleUoW interface {
		TxManager
		VehicleRepoFactory
	}

	VehicleUoWFactory interface {
		Create() VehicleUoW
	}

	// BatchUoW covers reconciliation: batches, their records and the orders
	// whose COD status follows completion.
	BatchUoW interface {
		TxManager
		OrderRepoFactory
		SubmissionRepoFactory
		BatchRepoFactory
	}

	BatchUoWFactory interface {
		Create() BatchUoW
	}
)

// FactoryFunc adapts a constructor function to any of the factory interfaces
// above.
//
// Example:
//
//	var orders OrderUoWFactory = FactoryFunc[OrderUoW](func() OrderUoW {
//	    return gormFactory.Create()
//	})
type FactoryFunc[T any] func() T

func (f FactoryFunc[T]) Create() T {
	return f()
}
