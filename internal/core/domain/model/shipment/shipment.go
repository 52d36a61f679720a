package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Link is the join record between a shipment and one order. PriorStatus is
// the order status at link time; removing the order restores it.
type Link struct {
	OrderID     kernel.UUID
	LinkedAt    time.Time
	PriorStatus order.Status
}

// Shipment is one vehicle trip (or one courier run) carrying a set of orders
// from an office towards a single destination office.
//
// Business rules:
//   - Only the assigned employee may start or finish the shipment
//   - Orders are linked and unlinked only while the shipment is pending
//   - Every linked order shares the shipment's destination office
type Shipment struct {
	id           kernel.UUID
	code         string
	status       Status
	shipmentType Type
	vehicleID    *kernel.UUID
	employeeID   kernel.UUID
	employeeRole kernel.Role
	fromOfficeID kernel.UUID
	toOfficeID   kernel.UUID
	startedAt    *time.Time
	endedAt      *time.Time
	createdAt    time.Time
	updatedAt    time.Time
	links        []Link

	guard guard.ConstructorGuard
}

// NewShipment opens a pending shipment. The type follows from the employee role:
// drivers run transfers, couriers run deliveries.
//
// Example:
//
//	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewCode("SHP"),
//	    driverID, kernel.RoleDriver, fromOffice, toOffice, &vehicleID)
func NewShipment(
	id kernel.UUID,
	code string,
	employeeID kernel.UUID,
	employeeRole kernel.Role,
	fromOfficeID kernel.UUID,
	toOfficeID kernel.UUID,
	vehicleID *kernel.UUID,
) (*Shipment, error) {
	now := time.Now().UTC()
	s := &Shipment{
		status:    Pending,
		vehicleID: vehicleID,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setEmployee(employeeID, employeeRole),
		s.setOffices(fromOfficeID, toOfficeID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot is the persisted state of a shipment.
type Snapshot struct {
	ID           kernel.UUID
	Code         string
	Status       Status
	VehicleID    *kernel.UUID
	EmployeeID   kernel.UUID
	EmployeeRole kernel.Role
	FromOfficeID kernel.UUID
	ToOfficeID   kernel.UUID
	StartedAt    *time.Time
	EndedAt      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Links        []Link
}

// RestoreShipment rebuilds a shipment from storage.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	s := &Shipment{
		vehicleID: snap.VehicleID,
		startedAt: snap.StartedAt,
		endedAt:   snap.EndedAt,
		createdAt: snap.CreatedAt,
		updatedAt: snap.UpdatedAt,
		links:     append([]Link(nil), snap.Links...),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(snap.ID),
		s.setCode(snap.Code),
		s.setEmployee(snap.EmployeeID, snap.EmployeeRole),
		s.setOffices(snap.FromOfficeID, snap.ToOfficeID),
		snap.Status.Validate(),
	); err != nil {
		return nil, err
	}
	s.status = snap.Status

	return s, nil
}

func (s *Shipment) Snapshot() Snapshot {
	return Snapshot{
		ID:           s.id,
		Code:         s.code,
		Status:       s.status,
		VehicleID:    s.vehicleID,
		EmployeeID:   s.employeeID,
		EmployeeRole: s.employeeRole,
		FromOfficeID: s.fromOfficeID,
		ToOfficeID:   s.toOfficeID,
		StartedAt:    s.startedAt,
		EndedAt:      s.endedAt,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
		Links:        s.Links(),
	}
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID           { return s.id }
func (s *Shipment) Code() string              { return s.code }
func (s *Shipment) Status() Status            { return s.status }
func (s *Shipment) Type() Type                { return s.shipmentType }
func (s *Shipment) VehicleID() *kernel.UUID   { return s.vehicleID }
func (s *Shipment) EmployeeID() kernel.UUID   { return s.employeeID }
func (s *Shipment) EmployeeRole() kernel.Role { return s.employeeRole }
func (s *Shipment) FromOfficeID() kernel.UUID { return s.fromOfficeID }
func (s *Shipment) ToOfficeID() kernel.UUID   { return s.toOfficeID }
func (s *Shipment) StartedAt() *time.Time     { return s.startedAt }
func (s *Shipment) EndedAt() *time.Time       { return s.endedAt }
func (s *Shipment) CreatedAt() time.Time      { return s.createdAt }

// Links returns a copy of the join records in link order.
func (s *Shipment) Links() []Link {
	return append([]Link(nil), s.links...)
}

// OrderIDs returns the linked order identifiers in link order.
func (s *Shipment) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.links))
	for _, l := range s.links {
		ids = append(ids, l.OrderID)
	}
	return ids
}

// Has reports whether the order is linked.
func (s *Shipment) Has(orderID kernel.UUID) bool {
	_, ok := s.find(orderID)
	return ok
}

// CheckAddable returns an OrderNotAddable error unless the order can join
// this shipment: eligible for the employee's role at the departure office,
// heading to the shipment's destination and not already linked.
func (s *Shipment) CheckAddable(o *order.Order) error {
	if s.Has(o.ID()) {
		return fmt.Errorf("%w: order %s is already linked", errs.ErrOrderNotAddable, o.ID())
	}
	if !IsEligible(s.employeeRole, s.fromOfficeID, o) {
		return fmt.Errorf("%w: order %s in status %s is not eligible for a %s leg from this office",
			errs.ErrOrderNotAddable, o.ID(), o.Status(), s.employeeRole)
	}
	if o.ToOfficeID() == nil || !o.ToOfficeID().IsEqual(s.toOfficeID) {
		return fmt.Errorf("%w: order %s is not heading to office %s", errs.ErrOrderNotAddable, o.ID(), s.toOfficeID)
	}
	return nil
}

// Link records the order with the status it had before pickup.
func (s *Shipment) Link(orderID kernel.UUID, prior order.Status) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.Has(orderID) {
		return fmt.Errorf("%w: order %s is already linked", errs.ErrOrderNotAddable, orderID)
	}
	now := time.Now().UTC()
	s.links = append(s.links, Link{OrderID: orderID, LinkedAt: now, PriorStatus: prior})
	s.updatedAt = now
	return nil
}

// Unlink drops the order and returns its join record so the caller can
// restore the order's prior status.
func (s *Shipment) Unlink(orderID kernel.UUID) (Link, error) {
	if err := s.checkOpen(); err != nil {
		return Link{}, err
	}
	idx, ok := s.find(orderID)
	if !ok {
		return Link{}, errs.NewObjectNotFoundError("shipment order", orderID)
	}
	link := s.links[idx]
	s.links = append(s.links[:idx], s.links[idx+1:]...)
	s.updatedAt = time.Now().UTC()
	return link, nil
}

// Start puts the shipment on the road. Only the assigned employee may start it.
func (s *Shipment) Start(actorID kernel.UUID) error {
	if !actorID.IsEqual(s.employeeID) {
		return errs.NewUnauthorizedError("start shipment "+s.code, actorID)
	}
	if s.status != Pending {
		return errs.NewInvalidTransitionError("shipment", s.status, InTransit)
	}
	now := time.Now().UTC()
	s.status = InTransit
	s.startedAt = &now
	s.updatedAt = now
	return nil
}

// Finish closes the shipment with outcome Completed or Cancelled.
// Completed requires the shipment to be in transit.
func (s *Shipment) Finish(actorID kernel.UUID, outcome Status) error {
	if !actorID.IsEqual(s.employeeID) {
		return errs.NewUnauthorizedError("finish shipment "+s.code, actorID)
	}
	if !outcome.IsTerminal() || !s.status.CanTransitionTo(outcome) {
		return errs.NewInvalidTransitionError("shipment", s.status, outcome)
	}
	now := time.Now().UTC()
	s.status = outcome
	s.endedAt = &now
	s.updatedAt = now
	return nil
}

func (s *Shipment) checkOpen() error {
	if s.status != Pending {
		return fmt.Errorf("%w: shipment %s is %s, orders change only while pending",
			errs.ErrInvalidTransition, s.code, s.status)
	}
	return nil
}

func (s *Shipment) find(orderID kernel.UUID) (int, bool) {
	for i, l := range s.links {
		if l.OrderID.IsEqual(orderID) {
			return i, true
		}
	}
	return -1, false
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	s.code = code
	return nil
}

func (s *Shipment) setEmployee(employeeID kernel.UUID, role kernel.Role) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}
	t := TypeFor(role)
	if t == TypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("employeeRole",
			fmt.Errorf("%q cannot run a shipment", role))
	}
	s.employeeID = employeeID
	s.employeeRole = role
	s.shipmentType = t
	return nil
}

func (s *Shipment) setOffices(from, to kernel.UUID) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}
	s.fromOfficeID = from
	s.toOfficeID = to
	return nil
}
