// Package shipmentrepo persists shipments and the shipment_orders join rows
// that remember each order's status before it was picked up.
package shipmentrepo

import (
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/pgconv"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

type ShipmentDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code         string     `gorm:"size:32;uniqueIndex"`
	Status       int        `gorm:"index"`
	Type         int
	VehicleID    *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;index"`
	EmployeeRole string     `gorm:"size:32"`
	FromOfficeID uuid.UUID  `gorm:"type:uuid;index"`
	ToOfficeID   uuid.UUID  `gorm:"type:uuid;index"`
	StartedAt    *time.Time
	EndedAt      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// LinkDTO is one order carried by a shipment.
type LinkDTO struct {
	ShipmentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	PriorStatus int
	LinkedAt    time.Time
}

func (LinkDTO) TableName() string {
	return "shipment_orders"
}

func fromDomain(s *shipment.Shipment) (ShipmentDTO, []LinkDTO) {
	snap := s.Snapshot()
	dto := ShipmentDTO{
		ID:           snap.ID.Bytes(),
		Code:         snap.Code,
		Status:       int(snap.Status),
		Type:         int(s.Type()),
		VehicleID:    pgconv.ToPtr(snap.VehicleID),
		EmployeeID:   snap.EmployeeID.Bytes(),
		EmployeeRole: string(snap.EmployeeRole),
		FromOfficeID: snap.FromOfficeID.Bytes(),
		ToOfficeID:   snap.ToOfficeID.Bytes(),
		StartedAt:    snap.StartedAt,
		EndedAt:      snap.EndedAt,
		CreatedAt:    snap.CreatedAt,
		UpdatedAt:    snap.UpdatedAt,
	}

	links := make([]LinkDTO, 0, len(snap.Links))
	for _, l := range snap.Links {
		links = append(links, LinkDTO{
			ShipmentID:  dto.ID,
			OrderID:     l.OrderID.Bytes(),
			PriorStatus: int(l.PriorStatus),
			LinkedAt:    l.LinkedAt,
		})
	}
	return dto, links
}

func toDomain(dto ShipmentDTO, links []LinkDTO) (*shipment.Shipment, error) {
	id, idErr := pgconv.FromUUID(dto.ID)
	employee, employeeErr := pgconv.FromUUID(dto.EmployeeID)
	from, fromErr := pgconv.FromUUID(dto.FromOfficeID)
	to, toErr := pgconv.FromUUID(dto.ToOfficeID)
	vehicleID, vehicleErr := pgconv.FromPtr(dto.VehicleID)
	if err := errors.Join(idErr, employeeErr, fromErr, toErr, vehicleErr); err != nil {
		return nil, err
	}

	restored := make([]shipment.Link, 0, len(links))
	for _, l := range links {
		orderID, err := pgconv.FromUUID(l.OrderID)
		if err != nil {
			return nil, err
		}
		restored = append(restored, shipment.Link{
			OrderID:     orderID,
			LinkedAt:    l.LinkedAt,
			PriorStatus: order.Status(l.PriorStatus),
		})
	}

	return shipment.RestoreShipment(shipment.Snapshot{
		ID:           id,
		Code:         dto.Code,
		Status:       shipment.Status(dto.Status),
		VehicleID:    vehicleID,
		EmployeeID:   employee,
		EmployeeRole: kernel.Role(dto.EmployeeRole),
		FromOfficeID: from,
		ToOfficeID:   to,
		StartedAt:    dto.StartedAt,
		EndedAt:      dto.EndedAt,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		Links:        restored,
	})
}
