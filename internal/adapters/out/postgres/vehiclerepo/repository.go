// Package vehiclerepo persists vehicles.
package vehiclerepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgconv"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VehicleDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Plate      string     `gorm:"size:16;uniqueIndex"`
	OfficeID   uuid.UUID  `gorm:"type:uuid;index"`
	Status     int        `gorm:"index"`
	ShipmentID *uuid.UUID `gorm:"type:uuid"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormVehicleRepository implements VehicleRepository using GORM.
type GormVehicleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormVehicleRepository(db *gorm.DB, tracker aggregateTracker) *GormVehicleRepository {
	return &GormVehicleRepository{db: db, tracker: tracker}
}

func (r *GormVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
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

func (r *GormVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VehicleDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	return get(r.db.WithContext(ctx), id)
}

func (r *GormVehicleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	return get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func get(db *gorm.DB, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:         v.ID().Bytes(),
		Plate:      v.Plate(),
		OfficeID:   v.OfficeID().Bytes(),
		Status:     int(v.Status()),
		ShipmentID: pgconv.ToPtr(v.ShipmentID()),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, idErr := pgconv.FromUUID(dto.ID)
	office, officeErr := pgconv.FromUUID(dto.OfficeID)
	shipmentID, shipmentErr := pgconv.FromPtr(dto.ShipmentID)
	if err := errors.Join(idErr, officeErr, shipmentErr); err != nil {
		return nil, err
	}
	return vehicle.RestoreVehicle(id, dto.Plate, office, vehicle.Status(dto.Status), shipmentID)
}
