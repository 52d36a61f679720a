package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetBatchQueryIsNotConstructed = errors.New(
	"GetBatchQuery must be created via NewGetBatchQuery constructor",
)

// GetBatchQuery reads a settlement batch with its member records.
type GetBatchQuery struct {
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBatchQuery(batchID kernel.UUID) (GetBatchQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetBatchQuery{}, err
	}
	return GetBatchQuery{
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetBatchQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchQueryIsNotConstructed)
}

func (q GetBatchQuery) BatchID() kernel.UUID { return q.batchID }

// GetBatchQueryResponse carries the stored totals; Discrepancy is
// TotalActual - TotalSystem.
type GetBatchQueryResponse struct {
	ID          kernel.UUID
	Code        string
	CourierID   kernel.UUID
	Status      string
	TotalSystem kernel.Money
	TotalActual kernel.Money
	Discrepancy kernel.Money
	CheckedBy   *kernel.UUID
	CheckedAt   *time.Time
	Notes       string
	Records     []RecordView
}

// RecordView is a collection record as listed to reconcilers and couriers.
type RecordView struct {
	ID           kernel.UUID
	Code         string
	OrderID      kernel.UUID
	Kind         string
	Status       string
	SystemAmount kernel.Money
	ActualAmount kernel.Money
	Discrepancy  kernel.Money
	CreatedAt    time.Time
}
