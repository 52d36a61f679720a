package orderrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgconv"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order and its history. The stored version starts at 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	next := aggregate.Version() + 1
	dto := fromDomain(aggregate, next)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.flushHistory(ctx, aggregate); err != nil {
		return err
	}

	aggregate.SyncVersion(next)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order only if the stored version still matches the one it
// was loaded with.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	next := aggregate.Version() + 1
	dto := fromDomain(aggregate, next)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConcurrentUpdateError("order", aggregate.ID(), aggregate.Version())
	}

	if err := r.flushHistory(ctx, aggregate); err != nil {
		return err
	}

	aggregate.SyncVersion(next)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and holds a row lock until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ListForUpdate locks the rows in id order and returns them in the caller's order.
func (r *GormOrderRepository) ListForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	byID, err := r.lockAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, ok := byID[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// FindForUpdate is ListForUpdate that skips unknown ids.
func (r *GormOrderRepository) FindForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	byID, err := r.lockAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(byID))
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if o, ok := byID[id]; ok {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *GormOrderRepository) lockAll(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*order.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", pgconv.ToSlice(ids)).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*order.Order, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		byID[o.ID()] = o
	}
	return byID, nil
}

// History returns the status changes of an order, oldest first.
func (r *GormOrderRepository) History(ctx context.Context, id kernel.UUID) ([]order.HistoryEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) flushHistory(ctx context.Context, aggregate *order.Order) error {
	pending := aggregate.PendingHistory()
	if len(pending) == 0 {
		return nil
	}

	rows := make([]HistoryDTO, 0, len(pending))
	for _, e := range pending {
		rows = append(rows, fromHistory(e))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
