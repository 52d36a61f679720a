package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details carries the customer-facing attributes of a parcel.
type Details struct {
	Sender        kernel.Contact
	Recipient     kernel.Contact
	Weight        decimal.Decimal
	DeclaredValue kernel.Money
	CODAmount     kernel.Money
	ServiceType   string
	Payer         Payer
	FromOfficeID  *kernel.UUID
	ToOfficeID    *kernel.UUID
	Notes         string
}

// Order is the aggregate root for a parcel. It owns the status machine, the
// fee and COD expectations, and the status history not yet persisted.
//
// Order follows these invariants:
//   - Status changes only along the edges of the transition table
//   - COD status is non-None only while the COD amount is positive
//   - Weight is positive; declared value, COD amount and fee are non-negative
//   - Version increases by one on every successful write
//
// Fields are private; callers change state only through the methods below so
// every change leaves a history entry.
type Order struct {
	id            kernel.UUID
	trackingCode  string
	status        Status
	creatorType   CreatorType
	ownerID       kernel.UUID
	sender        kernel.Contact
	recipient     kernel.Contact
	weight        decimal.Decimal
	declaredValue kernel.Money
	codAmount     kernel.Money
	shippingFee   kernel.Money
	serviceType   string
	payer         Payer
	paymentStatus PaymentStatus
	codStatus     CODStatus
	incident      Incident
	fromOfficeID  *kernel.UUID
	toOfficeID    *kernel.UUID
	courierID     *kernel.UUID
	notes         string
	createdAt     time.Time
	updatedAt     time.Time
	deliveredAt   *time.Time
	paidAt        *time.Time
	refundedAt    *time.Time
	version       int

	pendingHistory []HistoryEntry

	isConstructed bool
}

// NewOrder opens a parcel order. Customer-created orders start in Draft,
// depot-created orders start in Pending. The shipping fee comes from the fee
// oracle and is passed in already computed.
//
// Parameters:
//   - id: identifier of the new order
//   - trackingCode: human-facing code printed on the label
//   - creatorType: CreatorCustomer or CreatorDepot
//   - createdBy: the acting user; becomes the owner for customer orders
//   - ownerID: account the order belongs to (customer or shop)
//   - details: sender, recipient and parcel attributes
//   - shippingFee: fee computed for details
//
// Returns:
//   - *Order: the new order with one history entry (Unknown -> initial status)
//   - error: joined validation errors for every invalid attribute
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewCode("ORD"), order.CreatorCustomer,
//	    actor.ID, actor.ID, details, fee)
func NewOrder(
	id kernel.UUID,
	trackingCode string,
	creatorType CreatorType,
	createdBy kernel.UUID,
	ownerID kernel.UUID,
	details Details,
	shippingFee kernel.Money,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		paymentStatus: PaymentUnpaid,
		codStatus:     CODNone,
		incident:      IncidentNone,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTrackingCode(trackingCode),
		o.setCreatorType(creatorType),
		o.setOwner(ownerID),
		o.applyDetails(details),
		o.setShippingFee(shippingFee),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	initial := Pending
	if creatorType == CreatorCustomer {
		initial = Draft
	}
	o.status = initial
	o.record(Unknown, initial, createdBy, nil, "created")

	return o, nil
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID            kernel.UUID
	TrackingCode  string
	Status        Status
	CreatorType   CreatorType
	OwnerID       kernel.UUID
	Sender        kernel.Contact
	Recipient     kernel.Contact
	Weight        decimal.Decimal
	DeclaredValue kernel.Money
	CODAmount     kernel.Money
	ShippingFee   kernel.Money
	ServiceType   string
	Payer         Payer
	PaymentStatus PaymentStatus
	CODStatus     CODStatus
	Incident      Incident
	FromOfficeID  *kernel.UUID
	ToOfficeID    *kernel.UUID
	CourierID     *kernel.UUID
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
	PaidAt        *time.Time
	RefundedAt    *time.Time
	Version       int
}

// RestoreOrder rebuilds an order from persisted state. It re-checks the
// attribute invariants but records no history.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		paymentStatus: s.PaymentStatus,
		codStatus:     s.CODStatus,
		incident:      s.Incident,
		courierID:     s.CourierID,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		deliveredAt:   s.DeliveredAt,
		paidAt:        s.PaidAt,
		refundedAt:    s.RefundedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setTrackingCode(s.TrackingCode),
		o.setCreatorType(s.CreatorType),
		o.setOwner(s.OwnerID),
		s.Status.Validate(),
		o.applyDetails(Details{
			Sender:        s.Sender,
			Recipient:     s.Recipient,
			Weight:        s.Weight,
			DeclaredValue: s.DeclaredValue,
			CODAmount:     s.CODAmount,
			ServiceType:   s.ServiceType,
			Payer:         s.Payer,
			FromOfficeID:  s.FromOfficeID,
			ToOfficeID:    s.ToOfficeID,
			Notes:         s.Notes,
		}),
		o.setShippingFee(s.ShippingFee),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	if err := o.validateCODStatus(); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot returns the full state for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:            o.id,
		TrackingCode:  o.trackingCode,
		Status:        o.status,
		CreatorType:   o.creatorType,
		OwnerID:       o.ownerID,
		Sender:        o.sender,
		Recipient:     o.recipient,
		Weight:        o.weight,
		DeclaredValue: o.declaredValue,
		CODAmount:     o.codAmount,
		ShippingFee:   o.shippingFee,
		ServiceType:   o.serviceType,
		Payer:         o.payer,
		PaymentStatus: o.paymentStatus,
		CODStatus:     o.codStatus,
		Incident:      o.incident,
		FromOfficeID:  o.fromOfficeID,
		ToOfficeID:    o.toOfficeID,
		CourierID:     o.courierID,
		Notes:         o.notes,
		CreatedAt:     o.createdAt,
		UpdatedAt:     o.updatedAt,
		DeliveredAt:   o.deliveredAt,
		PaidAt:        o.paidAt,
		RefundedAt:    o.refundedAt,
		Version:       o.version,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) TrackingCode() string           { return o.trackingCode }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) CreatorType() CreatorType       { return o.creatorType }
func (o *Order) OwnerID() kernel.UUID           { return o.ownerID }
func (o *Order) Sender() kernel.Contact         { return o.sender }
func (o *Order) Recipient() kernel.Contact      { return o.recipient }
func (o *Order) Weight() decimal.Decimal        { return o.weight }
func (o *Order) DeclaredValue() kernel.Money    { return o.declaredValue }
func (o *Order) CODAmount() kernel.Money        { return o.codAmount }
func (o *Order) ShippingFee() kernel.Money      { return o.shippingFee }
func (o *Order) ServiceType() string            { return o.serviceType }
func (o *Order) Payer() Payer                   { return o.payer }
func (o *Order) PaymentStatus() PaymentStatus   { return o.paymentStatus }
func (o *Order) CODStatus() CODStatus           { return o.codStatus }
func (o *Order) Incident() Incident             { return o.incident }
func (o *Order) FromOfficeID() *kernel.UUID     { return o.fromOfficeID }
func (o *Order) ToOfficeID() *kernel.UUID       { return o.toOfficeID }
func (o *Order) CourierID() *kernel.UUID        { return o.courierID }
func (o *Order) Notes() string                  { return o.notes }
func (o *Order) DeliveredAt() *time.Time        { return o.deliveredAt }
func (o *Order) RefundedAt() *time.Time         { return o.refundedAt }
func (o *Order) Version() int                   { return o.version }
func (o *Order) PendingHistory() []HistoryEntry { return o.pendingHistory }

// SyncVersion is called by the repository after a successful write: it stores
// the new version and drops the history entries that were written with it.
func (o *Order) SyncVersion(version int) {
	o.version = version
	o.pendingHistory = nil
}

// AdvanceToPending submits a draft. Allowed only from Draft.
func (o *Order) AdvanceToPending(actorID kernel.UUID) error {
	if o.status != Draft {
		return errs.NewInvalidTransitionError("order", o.status, Pending)
	}
	return o.moveTo(Pending, actorID, nil, "")
}

// Cancel withdraws the order. Allowed only from Draft, Pending or Confirmed.
//
// Example:
//
//	if err := o.Cancel(actor.ID, "customer changed mind"); errors.Is(err, errs.ErrInvalidTransition) {
//	    // already picked up
//	}
func (o *Order) Cancel(actorID kernel.UUID, reason string) error {
	if !o.status.IsCancellable() {
		return errs.NewInvalidTransitionError("order", o.status, Cancelled)
	}
	return o.moveTo(Cancelled, actorID, nil, reason)
}

// Transition applies a staff-requested status change. Only Confirmed,
// ReadyForPickup, PickingUp and AtOriginOffice may be requested this way;
// every other status has a dedicated operation.
func (o *Order) Transition(to Status, actorID kernel.UUID, note string) error {
	if !to.IsManualTarget() {
		return errs.NewInvalidTransitionError("order", o.status, to)
	}
	return o.moveTo(to, actorID, nil, note)
}

// PickUp links the order to a shipment leg.
func (o *Order) PickUp(actorID, shipmentID kernel.UUID) error {
	return o.moveTo(PickedUp, actorID, &shipmentID, "linked to shipment")
}

// ReleaseFromShipment undoes PickUp for an order removed from a pending
// shipment, restoring the status it had when linked.
func (o *Order) ReleaseFromShipment(actorID, shipmentID kernel.UUID, prior Status) error {
	if o.status != PickedUp || !prior.CanTransitionTo(PickedUp) {
		return errs.NewInvalidTransitionError("order", o.status, prior)
	}
	o.record(o.status, prior, actorID, &shipmentID, "removed from shipment")
	o.status = prior
	return nil
}

// Depart moves a picked-up order onto the road with its shipment.
func (o *Order) Depart(actorID, shipmentID kernel.UUID) error {
	return o.moveTo(InTransit, actorID, &shipmentID, "")
}

// Arrive marks the order as received by the destination depot.
func (o *Order) Arrive(actorID, shipmentID kernel.UUID) error {
	return o.moveTo(AtDestOffice, actorID, &shipmentID, "")
}

// ReturnToSender moves the order to Returned. Reached from a cancelled
// shipment (PickedUp, InTransit) or a finished return trip (Returning).
// Settlement effects are applied separately by the settlement service.
func (o *Order) ReturnToSender(actorID kernel.UUID, shipmentID *kernel.UUID, note string) error {
	return o.moveTo(Returned, actorID, shipmentID, note)
}

// StartDelivery hands the order to a last-mile courier.
func (o *Order) StartDelivery(actorID, courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := o.moveTo(Delivering, actorID, nil, ""); err != nil {
		return err
	}
	o.courierID = &courierID
	return nil
}

// Deliver records a successful hand-over to the recipient.
func (o *Order) Deliver(actorID kernel.UUID) error {
	if err := o.moveTo(Delivered, actorID, nil, ""); err != nil {
		return err
	}
	at := o.updatedAt
	o.deliveredAt = &at
	return nil
}

// FailDelivery records a failed attempt and its reason.
func (o *Order) FailDelivery(actorID kernel.UUID, incident Incident) error {
	if incident != IncidentRecipientUnavailable && incident != IncidentRecipientRefused {
		return errs.NewValueIsInvalidErrorWithCause("incident", fmt.Errorf("%s is not a failure reason", incident))
	}
	if err := o.moveTo(FailedDelivery, actorID, nil, incident.String()); err != nil {
		return err
	}
	o.incident = incident
	return nil
}

// RetryDelivery sends a failed parcel out again. Whether failed deliveries
// may be retried is business policy owned by the caller.
func (o *Order) RetryDelivery(actorID kernel.UUID, retryAllowed bool) error {
	if o.status != FailedDelivery || !retryAllowed {
		return errs.NewInvalidTransitionError("order", o.status, Delivering)
	}
	o.record(o.status, Delivering, actorID, nil, "retry")
	o.status = Delivering
	return nil
}

// StartReturn sends the parcel back towards the sender.
func (o *Order) StartReturn(actorID kernel.UUID, note string) error {
	return o.moveTo(Returning, actorID, nil, note)
}

// Edit applies a patch after checking the editor's rule table for the
// order's origin. The whole patch is rejected if any field is locked.
func (o *Order) Edit(editor Editor, patch Patch) error {
	if err := CheckEdit(editor, o.creatorType, o.status, patch.Fields()); err != nil {
		return err
	}

	details := Details{
		Sender:        o.sender,
		Recipient:     o.recipient,
		Weight:        o.weight,
		DeclaredValue: o.declaredValue,
		CODAmount:     o.codAmount,
		ServiceType:   o.serviceType,
		Payer:         o.payer,
		FromOfficeID:  o.fromOfficeID,
		ToOfficeID:    o.toOfficeID,
		Notes:         o.notes,
	}
	if patch.Sender != nil {
		details.Sender = *patch.Sender
	}
	if patch.Recipient != nil {
		details.Recipient = *patch.Recipient
	}
	if patch.Weight != nil {
		details.Weight = *patch.Weight
	}
	if patch.DeclaredValue != nil {
		details.DeclaredValue = *patch.DeclaredValue
	}
	if patch.CODAmount != nil {
		details.CODAmount = *patch.CODAmount
		if o.codStatus != CODNone && !details.CODAmount.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("codAmount",
				fmt.Errorf("cannot clear COD while its status is %s", o.codStatus))
		}
	}
	if patch.ServiceType != nil {
		details.ServiceType = *patch.ServiceType
	}
	if patch.Payer != nil {
		details.Payer = *patch.Payer
	}
	if patch.ToOfficeID != nil {
		details.ToOfficeID = patch.ToOfficeID
	}
	if patch.Notes != nil {
		details.Notes = *patch.Notes
	}

	// Validate on a copy so a rejected patch leaves the order untouched.
	candidate := *o
	if err := candidate.applyDetails(details); err != nil {
		return err
	}
	*o = candidate
	o.updatedAt = time.Now().UTC()
	return nil
}

// Reprice replaces the shipping fee after an edit that affects it.
func (o *Order) Reprice(fee kernel.Money) error {
	return o.setShippingFee(fee)
}

// MarkFeePaid records that the shipping fee was collected.
func (o *Order) MarkFeePaid() {
	now := time.Now().UTC()
	o.paymentStatus = PaymentPaid
	o.paidAt = &now
	o.updatedAt = now
}

// MarkCODPending records that a COD collection record exists and awaits reconciliation.
func (o *Order) MarkCODPending() error {
	if !o.codAmount.IsPositive() {
		return errs.NewInconsistentStateError("order", o.id, "has no COD amount to collect")
	}
	o.codStatus = CODPending
	o.updatedAt = time.Now().UTC()
	return nil
}

// MarkCODCollected records that reconciliation confirmed the COD cash.
// Orders whose COD expectation was cleared meanwhile are left unchanged.
func (o *Order) MarkCODCollected() {
	if o.codStatus != CODPending {
		return
	}
	o.codStatus = CODCollected
	o.updatedAt = time.Now().UTC()
}

// ShiftFeeToShop makes the shop liable for the shipping fee.
func (o *Order) ShiftFeeToShop() {
	o.payer = PayerShop
	o.updatedAt = time.Now().UTC()
}

// ClearCOD drops the COD expectation after the recipient refused the parcel.
func (o *Order) ClearCOD() {
	o.codAmount = kernel.ZeroMoney()
	o.codStatus = CODNone
	o.updatedAt = time.Now().UTC()
}

// MarkRefunded records that collected cash is being returned.
func (o *Order) MarkRefunded() {
	now := time.Now().UTC()
	o.paymentStatus = PaymentRefunded
	o.refundedAt = &now
	o.updatedAt = now
}

func (o *Order) moveTo(to Status, actorID kernel.UUID, shipmentID *kernel.UUID, note string) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError("order", o.status, to)
	}
	o.record(o.status, to, actorID, shipmentID, note)
	o.status = to
	return nil
}

func (o *Order) record(from, to Status, actorID kernel.UUID, shipmentID *kernel.UUID, note string) {
	now := time.Now().UTC()
	o.updatedAt = now
	o.pendingHistory = append(o.pendingHistory, HistoryEntry{
		OrderID:    o.id,
		From:       from,
		To:         to,
		ActorID:    actorID,
		ShipmentID: shipmentID,
		Note:       note,
		At:         now,
	})
}

func (o *Order) validateCODStatus() error {
	if o.codStatus == CODUnknown {
		return errs.NewValueIsInvalidError("codStatus")
	}
	if o.codStatus != CODNone && !o.codAmount.IsPositive() {
		return errs.NewInconsistentStateError("order", o.id, "has COD status "+o.codStatus.String()+" without COD amount")
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTrackingCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("trackingCode")
	}
	o.trackingCode = code
	return nil
}

func (o *Order) setCreatorType(c CreatorType) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.creatorType = c
	return nil
}

func (o *Order) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setShippingFee(fee kernel.Money) error {
	if err := fee.ValidateNonNegative("shippingFee"); err != nil {
		return err
	}
	o.shippingFee = fee
	return nil
}

func (o *Order) applyDetails(d Details) error {
	var errList []error
	if err := d.Sender.Validate(); err != nil {
		errList = append(errList, fmt.Errorf("sender: %w", err))
	}
	if err := d.Recipient.Validate(); err != nil {
		errList = append(errList, fmt.Errorf("recipient: %w", err))
	}
	if !d.Weight.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%s is not greater than 0", d.Weight)))
	}
	if err := d.DeclaredValue.ValidateNonNegative("declaredValue"); err != nil {
		errList = append(errList, err)
	}
	if err := d.CODAmount.ValidateNonNegative("codAmount"); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(d.ServiceType) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("serviceType"))
	}
	if err := d.Payer.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.sender = d.Sender
	o.recipient = d.Recipient
	o.weight = d.Weight
	o.declaredValue = d.DeclaredValue
	o.codAmount = d.CODAmount
	o.serviceType = strings.TrimSpace(d.ServiceType)
	o.payer = d.Payer
	o.fromOfficeID = d.FromOfficeID
	o.toOfficeID = d.ToOfficeID
	o.notes = d.Notes
	return nil
}
