package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetOpenRecordsQueryIsNotConstructed = errors.New(
	"GetOpenRecordsQuery must be created via NewGetOpenRecordsQuery constructor",
)

// GetOpenRecordsQuery lists a courier's records that still wait for a batch:
// pending ones to submit and in_batch ones not attached to any batch yet.
type GetOpenRecordsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOpenRecordsQuery(courierID kernel.UUID) (GetOpenRecordsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetOpenRecordsQuery{}, err
	}
	return GetOpenRecordsQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOpenRecordsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenRecordsQueryIsNotConstructed)
}

func (q GetOpenRecordsQuery) CourierID() kernel.UUID { return q.courierID }
