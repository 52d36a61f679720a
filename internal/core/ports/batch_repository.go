package ports

import (
	"context"

	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/kernel"
)

// BatchRepository persists settlement batches. Member ids are derived from
// the records pointing at the batch.
type BatchRepository interface {
	Add(ctx context.Context, aggregate *batch.Batch) error
	Update(ctx context.Context, aggregate *batch.Batch) error
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// GetForUpdate retrieves a batch and locks its row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// ListIDsByStatus returns the ids of batches in status, oldest first.
	ListIDsByStatus(ctx context.Context, status batch.Status) ([]kernel.UUID, error)
}
