// Package ports defines the contracts between the core and its adapters:
// repositories bound to a unit of work, and the outbound collaborators
// (fee oracle, notifier, arrival dispatcher).
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes also flush the order's pending history entries.
type OrderRepository interface {
	// Add persists a new order with its history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes guarded by the order's version. When the stored
	// version differs it returns ErrConcurrentUpdate and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListForUpdate locks and returns the orders in the order of ids.
	// A missing id fails the whole call with ErrObjectNotFound.
	//
	// Example:
	//   orders, err := repo.ListForUpdate(ctx, cmd.OrderIDs())
	//   if errors.Is(err, errs.ErrObjectNotFound) {
	//       return err
	//   }
	ListForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// FindForUpdate locks the orders that exist among ids, in the order of
	// ids. Unknown and repeated ids are skipped.
	FindForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// History returns the order's status changes, oldest first.
	History(ctx context.Context, id kernel.UUID) ([]order.HistoryEntry, error)
}
