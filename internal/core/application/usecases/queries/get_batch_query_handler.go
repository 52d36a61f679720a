package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/batch"
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetBatchQueryHandler struct {
	db *gorm.DB
}

func NewGetBatchQueryHandler(db *gorm.DB) GetBatchQueryHandler {
	return GetBatchQueryHandler{db: db}
}

type batchRow struct {
	ID          uuid.UUID
	Code        string
	CourierID   uuid.UUID
	Status      int
	TotalSystem decimal.Decimal
	TotalActual decimal.Decimal
	CheckedBy   *uuid.UUID
	CheckedAt   *time.Time
	Notes       string
}

type recordRow struct {
	ID           uuid.UUID
	Code         string
	OrderID      uuid.UUID
	Kind         int
	Status       int
	SystemAmount decimal.Decimal
	ActualAmount decimal.Decimal
	CreatedAt    time.Time
}

func (h GetBatchQueryHandler) Handle(ctx context.Context, query GetBatchQuery) (GetBatchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBatchQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var rows []batchRow
	if err := db.Raw(`
		SELECT
			id,
			code,
			courier_id,
			status,
			total_system,
			total_actual,
			checked_by,
			checked_at,
			notes
		FROM payment_submission_batches
		WHERE id = ?
	`, query.BatchID().Bytes()).Scan(&rows).Error; err != nil {
		return GetBatchQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetBatchQueryResponse{}, errs.NewObjectNotFoundError("batch", query.BatchID().String())
	}
	row := rows[0]

	var members []recordRow
	if err := db.Raw(`
		SELECT
			id,
			code,
			order_id,
			kind,
			status,
			system_amount,
			actual_amount,
			created_at
		FROM payment_submissions
		WHERE batch_id = ?
		ORDER BY created_at, id
	`, row.ID).Scan(&members).Error; err != nil {
		return GetBatchQueryResponse{}, err
	}

	resp := GetBatchQueryResponse{
		Code:        row.Code,
		Status:      batch.Status(row.Status).String(),
		TotalSystem: kernel.NewMoney(row.TotalSystem),
		TotalActual: kernel.NewMoney(row.TotalActual),
		Discrepancy: kernel.NewMoney(row.TotalActual.Sub(row.TotalSystem)),
		CheckedAt:   row.CheckedAt,
		Notes:       row.Notes,
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(row.ID[:]); err != nil {
		return GetBatchQueryResponse{}, err
	}
	if resp.CourierID, err = kernel.UUIDFromBytes(row.CourierID[:]); err != nil {
		return GetBatchQueryResponse{}, err
	}
	if resp.CheckedBy, err = optionalID(row.CheckedBy); err != nil {
		return GetBatchQueryResponse{}, err
	}
	if resp.Records, err = toRecordViews(members); err != nil {
		return GetBatchQueryResponse{}, err
	}

	return resp, nil
}

func toRecordViews(rows []recordRow) ([]RecordView, error) {
	views := make([]RecordView, 0, len(rows))
	for _, r := range rows {
		id, err := kernel.UUIDFromBytes(r.ID[:])
		if err != nil {
			return nil, err
		}
		orderID, err := kernel.UUIDFromBytes(r.OrderID[:])
		if err != nil {
			return nil, err
		}
		views = append(views, RecordView{
			ID:           id,
			Code:         r.Code,
			OrderID:      orderID,
			Kind:         collection.Kind(r.Kind).String(),
			Status:       collection.Status(r.Status).String(),
			SystemAmount: kernel.NewMoney(r.SystemAmount),
			ActualAmount: kernel.NewMoney(r.ActualAmount),
			Discrepancy:  kernel.NewMoney(r.ActualAmount.Sub(r.SystemAmount)),
			CreatedAt:    r.CreatedAt,
		})
	}
	return views, nil
}
