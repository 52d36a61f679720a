package queries

import (
	"context"

	"logistics/internal/core/domain/model/collection"

	"gorm.io/gorm"
)

type GetOpenRecordsQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenRecordsQueryHandler(db *gorm.DB) GetOpenRecordsQueryHandler {
	return GetOpenRecordsQueryHandler{db: db}
}

// Handle returns the records oldest first. Refunds are never open.
func (h GetOpenRecordsQueryHandler) Handle(ctx context.Context, query GetOpenRecordsQuery) ([]RecordView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []recordRow
	if err := h.db.WithContext(ctx).Raw(`
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
		WHERE courier_id = ?
			AND status IN (?, ?)
			AND batch_id IS NULL
			AND kind <> ?
		ORDER BY created_at, id
	`, query.CourierID().Bytes(), int(collection.Pending), int(collection.InBatch), int(collection.KindRefund)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toRecordViews(rows)
}
