package shipmentrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{db: db, tracker: tracker}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, links := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(links) > 0 {
		if err := r.db.WithContext(ctx).Create(&links).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the shipment row and replaces the join rows with the
// aggregate's current links.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, links := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	if err := r.db.WithContext(ctx).Where("shipment_id = ?", dto.ID).Delete(&LinkDTO{}).Error; err != nil {
		return err
	}
	if len(links) > 0 {
		if err := r.db.WithContext(ctx).Create(&links).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the shipment row. Join rows are only written by the
// holder of that lock.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormShipmentRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	var links []LinkDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", dto.ID).
		Order("linked_at, order_id").
		Find(&links).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, links)
}
