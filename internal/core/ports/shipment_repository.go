package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
)

// ShipmentRepository persists shipments together with their join records.
type ShipmentRepository interface {
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update writes the shipment row and replaces its join records.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate retrieves a shipment and locks its row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
}
