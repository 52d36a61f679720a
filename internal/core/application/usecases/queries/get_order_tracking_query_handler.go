package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads an order and its history in two
// statements. Returns ErrObjectNotFound for unknown tracking codes.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

type trackingRow struct {
	ID            uuid.UUID
	TrackingCode  string
	Status        int
	PaymentStatus int
	CODStatus     int `gorm:"column:cod_status"`
	Incident      int
	ShippingFee   decimal.Decimal
	CODAmount     decimal.Decimal `gorm:"column:cod_amount"`
	FromOfficeID  *uuid.UUID
	ToOfficeID    *uuid.UUID
	CourierID     *uuid.UUID
	CreatedAt     time.Time
	DeliveredAt   *time.Time
}

type historyRow struct {
	FromStatus int
	ToStatus   int
	ActorID    uuid.UUID
	ShipmentID *uuid.UUID
	Note       string
	CreatedAt  time.Time
}

func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	where, arg, ref := "tracking_code = ?", any(query.TrackingCode()), query.TrackingCode()
	if id := query.OrderID(); id != nil {
		where, arg, ref = "id = ?", id.Bytes(), id.String()
	}

	var rows []trackingRow
	if err := db.Raw(`
		SELECT
			id,
			tracking_code,
			status,
			payment_status,
			cod_status,
			incident,
			shipping_fee,
			cod_amount,
			from_office_id,
			to_office_id,
			courier_id,
			created_at,
			delivered_at
		FROM orders
		WHERE `+where, arg).Scan(&rows).Error; err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", ref)
	}
	row := rows[0]

	var history []historyRow
	if err := db.Raw(`
		SELECT
			from_status,
			to_status,
			actor_id,
			shipment_id,
			note,
			created_at
		FROM order_histories
		WHERE order_id = ?
		ORDER BY created_at, id
	`, row.ID).Scan(&history).Error; err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	resp := GetOrderTrackingQueryResponse{
		TrackingCode:  row.TrackingCode,
		Status:        order.Status(row.Status).String(),
		PaymentStatus: order.PaymentStatus(row.PaymentStatus).String(),
		CODStatus:     order.CODStatus(row.CODStatus).String(),
		Incident:      order.Incident(row.Incident).String(),
		ShippingFee:   kernel.NewMoney(row.ShippingFee),
		CODAmount:     kernel.NewMoney(row.CODAmount),
		CreatedAt:     row.CreatedAt,
		DeliveredAt:   row.DeliveredAt,
		History:       make([]TrackingEvent, 0, len(history)),
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(row.ID[:]); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	if resp.FromOfficeID, err = optionalID(row.FromOfficeID); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	if resp.ToOfficeID, err = optionalID(row.ToOfficeID); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	if resp.CourierID, err = optionalID(row.CourierID); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	for _, e := range history {
		actorID, err := kernel.UUIDFromBytes(e.ActorID[:])
		if err != nil {
			return GetOrderTrackingQueryResponse{}, err
		}
		shipmentID, err := optionalID(e.ShipmentID)
		if err != nil {
			return GetOrderTrackingQueryResponse{}, err
		}
		resp.History = append(resp.History, TrackingEvent{
			From:       order.Status(e.FromStatus).String(),
			To:         order.Status(e.ToStatus).String(),
			ActorID:    actorID,
			ShipmentID: shipmentID,
			Note:       e.Note,
			At:         e.CreatedAt,
		})
	}

	return resp, nil
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
