package collection

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrSubmissionIsNotConstructed = errors.New("Submission must be created via NewSubmission or NewRefund")

// Submission is one collection record: cash a courier took for an order.
// Positive records are cash owed to the company; a refund record carries the
// negated total of what was collected before the parcel came back.
//
// Records are never deleted. Discrepancy is always Actual - System.
type Submission struct {
	id           kernel.UUID
	code         string
	orderID      kernel.UUID
	courierID    kernel.UUID
	kind         Kind
	systemAmount kernel.Money
	actualAmount kernel.Money
	status       Status
	batchID      *kernel.UUID
	notes        string
	paidAt       *time.Time
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewSubmission opens a pending fee or COD record.
//
// Parameters:
//   - system: the amount the company expects, must not be negative
//   - actual: the amount the courier reports, must not be negative
func NewSubmission(
	id kernel.UUID,
	code string,
	orderID kernel.UUID,
	courierID kernel.UUID,
	kind Kind,
	system kernel.Money,
	actual kernel.Money,
	notes string,
) (*Submission, error) {
	now := time.Now().UTC()
	s := &Submission{
		status:    Pending,
		notes:     strings.TrimSpace(notes),
		paidAt:    &now,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	var kindErr error
	if kind != KindFee && kind != KindCOD {
		kindErr = errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%s records are not collected", kind))
	}

	if err := errors.Join(
		s.setIdentity(id, code, orderID, courierID),
		kindErr,
		system.ValidateNonNegative("systemAmount"),
		actual.ValidateNonNegative("actualAmount"),
	); err != nil {
		return nil, err
	}
	s.kind = kind
	s.systemAmount = system
	s.actualAmount = actual

	return s, nil
}

// NewRefund records the return of cash already collected for an order.
// collected is the positive total; the record stores its negation and is
// created Adjusted because there is nothing left to reconcile.
func NewRefund(id kernel.UUID, code string, orderID, courierID kernel.UUID, collected kernel.Money, notes string) (*Submission, error) {
	if !collected.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("collected", fmt.Errorf("%s is not positive", collected))
	}
	now := time.Now().UTC()
	s := &Submission{
		kind:         KindRefund,
		systemAmount: collected.Neg(),
		actualAmount: collected.Neg(),
		status:       Adjusted,
		notes:        strings.TrimSpace(notes),
		paidAt:       &now,
		createdAt:    now,
		updatedAt:    now,
		guard:        guard.NewConstructorGuard(),
	}
	if err := s.setIdentity(id, code, orderID, courierID); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot is the persisted state of a record.
type Snapshot struct {
	ID           kernel.UUID
	Code         string
	OrderID      kernel.UUID
	CourierID    kernel.UUID
	Kind         Kind
	SystemAmount kernel.Money
	ActualAmount kernel.Money
	Status       Status
	BatchID      *kernel.UUID
	Notes        string
	PaidAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func RestoreSubmission(snap Snapshot) (*Submission, error) {
	s := &Submission{
		kind:         snap.Kind,
		systemAmount: snap.SystemAmount,
		actualAmount: snap.ActualAmount,
		batchID:      snap.BatchID,
		notes:        snap.Notes,
		paidAt:       snap.PaidAt,
		createdAt:    snap.CreatedAt,
		updatedAt:    snap.UpdatedAt,
		guard:        guard.NewConstructorGuard(),
	}
	var kindErr error
	if snap.Kind == KindUnknown {
		kindErr = errs.NewValueIsInvalidError("kind")
	}
	if err := errors.Join(
		s.setIdentity(snap.ID, snap.Code, snap.OrderID, snap.CourierID),
		snap.Status.Validate(),
		kindErr,
	); err != nil {
		return nil, err
	}
	s.status = snap.Status
	return s, nil
}

func (s *Submission) Snapshot() Snapshot {
	return Snapshot{
		ID:           s.id,
		Code:         s.code,
		OrderID:      s.orderID,
		CourierID:    s.courierID,
		Kind:         s.kind,
		SystemAmount: s.systemAmount,
		ActualAmount: s.actualAmount,
		Status:       s.status,
		BatchID:      s.batchID,
		Notes:        s.notes,
		PaidAt:       s.paidAt,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
}

func (s *Submission) Validate() error {
	if s == nil {
		return ErrSubmissionIsNotConstructed
	}
	return s.guard.Validate(ErrSubmissionIsNotConstructed)
}

func (s *Submission) ID() kernel.UUID            { return s.id }
func (s *Submission) Code() string               { return s.code }
func (s *Submission) OrderID() kernel.UUID       { return s.orderID }
func (s *Submission) CourierID() kernel.UUID     { return s.courierID }
func (s *Submission) Kind() Kind                 { return s.kind }
func (s *Submission) SystemAmount() kernel.Money { return s.systemAmount }
func (s *Submission) ActualAmount() kernel.Money { return s.actualAmount }
func (s *Submission) Status() Status             { return s.status }
func (s *Submission) BatchID() *kernel.UUID      { return s.batchID }
func (s *Submission) Notes() string              { return s.notes }
func (s *Submission) PaidAt() *time.Time         { return s.paidAt }
func (s *Submission) CreatedAt() time.Time       { return s.createdAt }

// Discrepancy is Actual - System.
func (s *Submission) Discrepancy() kernel.Money {
	return s.actualAmount.Sub(s.systemAmount)
}

// IsRefund reports the negative return trail records.
func (s *Submission) IsRefund() bool {
	return s.kind == KindRefund
}

// SubmitActual stores the courier's apportioned hand-over amount and moves
// the record to InBatch. Records already attached to a batch are frozen.
func (s *Submission) SubmitActual(actual kernel.Money) error {
	if !s.status.IsOpen() || s.batchID != nil {
		return errs.NewInvalidTransitionError("collection record", s.status, InBatch)
	}
	s.actualAmount = actual
	s.status = InBatch
	s.touch()
	return nil
}

// AttachTo makes the record a member of a batch.
func (s *Submission) AttachTo(batchID kernel.UUID) error {
	if s.status != InBatch || s.batchID != nil {
		return errs.NewInconsistentStateError("collection record", s.id, "cannot join a batch in status "+s.status.String())
	}
	s.batchID = &batchID
	s.touch()
	return nil
}

// Detach releases the record from a cancelled batch. It stays InBatch.
func (s *Submission) Detach() {
	s.batchID = nil
	s.touch()
}

// Settle closes an InBatch record as Matched or Mismatched.
func (s *Submission) Settle(matched bool) error {
	to := Mismatched
	if matched {
		to = Matched
	}
	if s.status != InBatch {
		return errs.NewInvalidTransitionError("collection record", s.status, to)
	}
	s.status = to
	s.touch()
	return nil
}

// Adjust resolves a mismatch with the corrected actual amount.
func (s *Submission) Adjust(corrected kernel.Money, note string) error {
	if s.status != Mismatched {
		return errs.NewInvalidTransitionError("collection record", s.status, Adjusted)
	}
	if err := corrected.ValidateNonNegative("correctedAmount"); err != nil {
		return err
	}
	s.actualAmount = corrected
	s.status = Adjusted
	if note = strings.TrimSpace(note); note != "" {
		s.notes = note
	}
	s.touch()
	return nil
}

func (s *Submission) touch() {
	s.updatedAt = time.Now().UTC()
}

func (s *Submission) setIdentity(id kernel.UUID, code string, orderID, courierID kernel.UUID) error {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(code) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("code"))
	}
	if err := orderID.Validate(); err != nil {
		errList = append(errList, fmt.Errorf("orderID: %w", err))
	}
	if err := courierID.Validate(); err != nil {
		errList = append(errList, fmt.Errorf("courierID: %w", err))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	s.id = id
	s.code = strings.TrimSpace(code)
	s.orderID = orderID
	s.courierID = courierID
	return nil
}
