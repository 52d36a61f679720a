package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
)

// VehicleRepository persists vehicles. Acquire and release always go through
// GetForUpdate so one vehicle has a single writer at a time.
type VehicleRepository interface {
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
}
