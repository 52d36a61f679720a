package collectionrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgconv"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormSubmissionRepository implements SubmissionRepository using GORM.
type GormSubmissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormSubmissionRepository(db *gorm.DB, tracker aggregateTracker) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db, tracker: tracker}
}

func (r *GormSubmissionRepository) Add(ctx context.Context, aggregate *collection.Submission) error {
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

func (r *GormSubmissionRepository) Update(ctx context.Context, aggregate *collection.Submission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SubmissionDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment submission", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSubmissionRepository) Get(ctx context.Context, id kernel.UUID) (*collection.Submission, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormSubmissionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*collection.Submission, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ListForUpdate locks the records found for ids. Unknown ids are skipped so
// the caller can decide whether an empty result is an error.
func (r *GormSubmissionRepository) ListForUpdate(ctx context.Context, ids []kernel.UUID) ([]*collection.Submission, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dtos []SubmissionDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", pgconv.ToSlice(ids)).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormSubmissionRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*collection.Submission, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SubmissionDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// ListByBatch locks and returns the members of a batch.
func (r *GormSubmissionRepository) ListByBatch(ctx context.Context, batchID kernel.UUID) ([]*collection.Submission, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SubmissionDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("batch_id = ?", batchID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormSubmissionRepository) get(db *gorm.DB, id kernel.UUID) (*collection.Submission, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SubmissionDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment submission", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
