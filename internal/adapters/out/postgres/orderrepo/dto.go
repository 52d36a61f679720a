// Package orderrepo persists order aggregates and their status history.
package orderrepo

import (
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/pgconv"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Contacts are embedded with a prefix and amounts
// are stored as numeric.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingCode  string          `gorm:"size:32;uniqueIndex"`
	Status        int             `gorm:"index"`
	CreatorType   int
	OwnerID       uuid.UUID       `gorm:"type:uuid;index"`
	Sender        ContactDTO      `gorm:"embedded;embeddedPrefix:sender_"`
	Recipient     ContactDTO      `gorm:"embedded;embeddedPrefix:recipient_"`
	Weight        decimal.Decimal `gorm:"type:numeric(10,3)"`
	DeclaredValue decimal.Decimal `gorm:"type:numeric(18,2)"`
	CODAmount     decimal.Decimal `gorm:"column:cod_amount;type:numeric(18,2)"`
	ShippingFee   decimal.Decimal `gorm:"type:numeric(18,2)"`
	ServiceType   string          `gorm:"size:32"`
	Payer         int
	PaymentStatus int
	CODStatus     int        `gorm:"column:cod_status"`
	Incident      int
	FromOfficeID  *uuid.UUID `gorm:"type:uuid;index"`
	ToOfficeID    *uuid.UUID `gorm:"type:uuid;index"`
	CourierID     *uuid.UUID `gorm:"type:uuid;index"`
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
	PaidAt        *time.Time
	RefundedAt    *time.Time
	Version       int `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ContactDTO is a sender or recipient embedded in the orders row.
type ContactDTO struct {
	Name        string `gorm:"size:128"`
	Phone       string `gorm:"size:32"`
	AddressLine string
	Ward        string `gorm:"size:64"`
	District    string `gorm:"size:64"`
	Region      string `gorm:"size:64"`
}

// HistoryDTO is one row of order_histories.
type HistoryDTO struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	ActorID    uuid.UUID  `gorm:"type:uuid"`
	ShipmentID *uuid.UUID `gorm:"type:uuid;index"`
	Note       string
	CreatedAt  time.Time
}

func (HistoryDTO) TableName() string {
	return "order_histories"
}

func fromContact(c kernel.Contact) ContactDTO {
	addr := c.Address()
	return ContactDTO{
		Name:        c.Name(),
		Phone:       c.Phone(),
		AddressLine: addr.Line,
		Ward:        addr.Ward,
		District:    addr.District,
		Region:      addr.Region,
	}
}

func (c ContactDTO) toDomain() (kernel.Contact, error) {
	return kernel.NewContact(c.Name, c.Phone, kernel.Address{
		Line:     c.AddressLine,
		Ward:     c.Ward,
		District: c.District,
		Region:   c.Region,
	})
}

// fromDomain maps an order to its row. The version is passed separately
// because writes store the next version, not the loaded one.
func fromDomain(o *order.Order, version int) OrderDTO {
	s := o.Snapshot()
	return OrderDTO{
		ID:            s.ID.Bytes(),
		TrackingCode:  s.TrackingCode,
		Status:        int(s.Status),
		CreatorType:   int(s.CreatorType),
		OwnerID:       s.OwnerID.Bytes(),
		Sender:        fromContact(s.Sender),
		Recipient:     fromContact(s.Recipient),
		Weight:        s.Weight,
		DeclaredValue: s.DeclaredValue.Decimal(),
		CODAmount:     s.CODAmount.Decimal(),
		ShippingFee:   s.ShippingFee.Decimal(),
		ServiceType:   s.ServiceType,
		Payer:         int(s.Payer),
		PaymentStatus: int(s.PaymentStatus),
		CODStatus:     int(s.CODStatus),
		Incident:      int(s.Incident),
		FromOfficeID:  pgconv.ToPtr(s.FromOfficeID),
		ToOfficeID:    pgconv.ToPtr(s.ToOfficeID),
		CourierID:     pgconv.ToPtr(s.CourierID),
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		DeliveredAt:   s.DeliveredAt,
		PaidAt:        s.PaidAt,
		RefundedAt:    s.RefundedAt,
		Version:       version,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := pgconv.FromUUID(dto.ID)
	owner, ownerErr := pgconv.FromUUID(dto.OwnerID)
	from, fromErr := pgconv.FromPtr(dto.FromOfficeID)
	to, toErr := pgconv.FromPtr(dto.ToOfficeID)
	courier, courierErr := pgconv.FromPtr(dto.CourierID)
	sender, senderErr := dto.Sender.toDomain()
	recipient, recipientErr := dto.Recipient.toDomain()
	if err := errors.Join(idErr, ownerErr, fromErr, toErr, courierErr, senderErr, recipientErr); err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		TrackingCode:  dto.TrackingCode,
		Status:        order.Status(dto.Status),
		CreatorType:   order.CreatorType(dto.CreatorType),
		OwnerID:       owner,
		Sender:        sender,
		Recipient:     recipient,
		Weight:        dto.Weight,
		DeclaredValue: kernel.NewMoney(dto.DeclaredValue),
		CODAmount:     kernel.NewMoney(dto.CODAmount),
		ShippingFee:   kernel.NewMoney(dto.ShippingFee),
		ServiceType:   dto.ServiceType,
		Payer:         order.Payer(dto.Payer),
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		CODStatus:     order.CODStatus(dto.CODStatus),
		Incident:      order.Incident(dto.Incident),
		FromOfficeID:  from,
		ToOfficeID:    to,
		CourierID:     courier,
		Notes:         dto.Notes,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		DeliveredAt:   dto.DeliveredAt,
		PaidAt:        dto.PaidAt,
		RefundedAt:    dto.RefundedAt,
		Version:       dto.Version,
	})
}

func fromHistory(e order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		OrderID:    e.OrderID.Bytes(),
		FromStatus: int(e.From),
		ToStatus:   int(e.To),
		ActorID:    e.ActorID.Bytes(),
		ShipmentID: pgconv.ToPtr(e.ShipmentID),
		Note:       e.Note,
		CreatedAt:  e.At,
	}
}

func (h HistoryDTO) toDomain() (order.HistoryEntry, error) {
	orderID, orderErr := pgconv.FromUUID(h.OrderID)
	actorID, actorErr := pgconv.FromUUID(h.ActorID)
	shipmentID, shipmentErr := pgconv.FromPtr(h.ShipmentID)
	if err := errors.Join(orderErr, actorErr, shipmentErr); err != nil {
		return order.HistoryEntry{}, err
	}
	return order.HistoryEntry{
		OrderID:    orderID,
		From:       order.Status(h.FromStatus),
		To:         order.Status(h.ToStatus),
		ActorID:    actorID,
		ShipmentID: shipmentID,
		Note:       h.Note,
		At:         h.CreatedAt,
	}, nil
}
