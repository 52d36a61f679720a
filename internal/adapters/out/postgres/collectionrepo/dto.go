// Package collectionrepo persists collection records in payment_submissions.
package collectionrepo

import (
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/pgconv"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubmissionDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code         string          `gorm:"size:32;uniqueIndex"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index"`
	CourierID    uuid.UUID       `gorm:"type:uuid;index"`
	Kind         int
	SystemAmount decimal.Decimal `gorm:"type:numeric(18,2)"`
	ActualAmount decimal.Decimal `gorm:"type:numeric(18,2)"`
	Status       int             `gorm:"index"`
	BatchID      *uuid.UUID      `gorm:"type:uuid;index"`
	Notes        string
	PaidAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubmissionDTO) TableName() string {
	return "payment_submissions"
}

func fromDomain(s *collection.Submission) SubmissionDTO {
	snap := s.Snapshot()
	return SubmissionDTO{
		ID:           snap.ID.Bytes(),
		Code:         snap.Code,
		OrderID:      snap.OrderID.Bytes(),
		CourierID:    snap.CourierID.Bytes(),
		Kind:         int(snap.Kind),
		SystemAmount: snap.SystemAmount.Decimal(),
		ActualAmount: snap.ActualAmount.Decimal(),
		Status:       int(snap.Status),
		BatchID:      pgconv.ToPtr(snap.BatchID),
		Notes:        snap.Notes,
		PaidAt:       snap.PaidAt,
		CreatedAt:    snap.CreatedAt,
		UpdatedAt:    snap.UpdatedAt,
	}
}

func toDomain(dto SubmissionDTO) (*collection.Submission, error) {
	id, idErr := pgconv.FromUUID(dto.ID)
	orderID, orderErr := pgconv.FromUUID(dto.OrderID)
	courierID, courierErr := pgconv.FromUUID(dto.CourierID)
	batchID, batchErr := pgconv.FromPtr(dto.BatchID)
	if err := errors.Join(idErr, orderErr, courierErr, batchErr); err != nil {
		return nil, err
	}

	return collection.RestoreSubmission(collection.Snapshot{
		ID:           id,
		Code:         dto.Code,
		OrderID:      orderID,
		CourierID:    courierID,
		Kind:         collection.Kind(dto.Kind),
		SystemAmount: kernel.NewMoney(dto.SystemAmount),
		ActualAmount: kernel.NewMoney(dto.ActualAmount),
		Status:       collection.Status(dto.Status),
		BatchID:      batchID,
		Notes:        dto.Notes,
		PaidAt:       dto.PaidAt,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}

func toDomainList(dtos []SubmissionDTO) ([]*collection.Submission, error) {
	out := make([]*collection.Submission, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
