package ports

import (
	"context"

	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
)

// SubmissionRepository persists collection records. Records are never deleted.
type SubmissionRepository interface {
	Add(ctx context.Context, aggregate *collection.Submission) error
	Update(ctx context.Context, aggregate *collection.Submission) error
	Get(ctx context.Context, id kernel.UUID) (*collection.Submission, error)

	// GetForUpdate retrieves a record and locks its row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*collection.Submission, error)

	// ListForUpdate locks and returns the records found for ids, oldest first.
	// Unknown ids are skipped.
	ListForUpdate(ctx context.Context, ids []kernel.UUID) ([]*collection.Submission, error)

	// ListByOrder returns all records of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*collection.Submission, error)

	// ListByBatch locks and returns the members of a batch, oldest first.
	ListByBatch(ctx context.Context, batchID kernel.UUID) ([]*collection.Submission, error)
}
