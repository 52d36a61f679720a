// Package batchrepo persists settlement batches in payment_submission_batches.
// Membership is not stored on the batch: it is read back from the
// batch_id column of payment_submissions.
package batchrepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/collectionrepo"
	"logistics/internal/adapters/out/postgres/pgconv"
	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BatchDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code        string          `gorm:"size:32;uniqueIndex"`
	CourierID   uuid.UUID       `gorm:"type:uuid;index"`
	TotalSystem decimal.Decimal `gorm:"type:numeric(18,2)"`
	TotalActual decimal.Decimal `gorm:"type:numeric(18,2)"`
	Status      int             `gorm:"index"`
	CheckedBy   *uuid.UUID      `gorm:"type:uuid"`
	CheckedAt   *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BatchDTO) TableName() string {
	return "payment_submission_batches"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormBatchRepository implements BatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{db: db, tracker: tracker}
}

func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBatchRepository) Update(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BatchDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("batch", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormBatchRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormBatchRepository) ListIDsByStatus(ctx context.Context, status batch.Status) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&BatchDTO{}).
		Where("status = ?", int(status)).
		Order("created_at, id").
		Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := pgconv.FromUUID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *GormBatchRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", id.String())
		}
		return nil, err
	}

	var members []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&collectionrepo.SubmissionDTO{}).
		Where("batch_id = ?", dto.ID).
		Order("created_at, id").
		Pluck("id", &members).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, members)
}

func fromDomain(b *batch.Batch) BatchDTO {
	snap := b.Snapshot()
	return BatchDTO{
		ID:          snap.ID.Bytes(),
		Code:        snap.Code,
		CourierID:   snap.CourierID.Bytes(),
		TotalSystem: snap.TotalSystem.Decimal(),
		TotalActual: snap.TotalActual.Decimal(),
		Status:      int(snap.Status),
		CheckedBy:   pgconv.ToPtr(snap.CheckedBy),
		CheckedAt:   snap.CheckedAt,
		Notes:       snap.Notes,
		CreatedAt:   snap.CreatedAt,
		UpdatedAt:   snap.UpdatedAt,
	}
}

func toDomain(dto BatchDTO, members []uuid.UUID) (*batch.Batch, error) {
	id, idErr := pgconv.FromUUID(dto.ID)
	courierID, courierErr := pgconv.FromUUID(dto.CourierID)
	checkedBy, checkedErr := pgconv.FromPtr(dto.CheckedBy)
	if err := errors.Join(idErr, courierErr, checkedErr); err != nil {
		return nil, err
	}

	memberIDs := make([]kernel.UUID, 0, len(members))
	for _, m := range members {
		mid, err := pgconv.FromUUID(m)
		if err != nil {
			return nil, err
		}
		memberIDs = append(memberIDs, mid)
	}

	return batch.RestoreBatch(batch.Snapshot{
		ID:          id,
		Code:        dto.Code,
		CourierID:   courierID,
		TotalSystem: kernel.NewMoney(dto.TotalSystem),
		TotalActual: kernel.NewMoney(dto.TotalActual),
		Status:      batch.Status(dto.Status),
		CheckedBy:   checkedBy,
		CheckedAt:   dto.CheckedAt,
		Notes:       dto.Notes,
		MemberIDs:   memberIDs,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}
