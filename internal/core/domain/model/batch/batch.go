package batch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")

// Batch groups one courier's InBatch collection records for reconciliation.
//
// Invariants:
//   - TotalSystem is the sum of member system amounts at creation and is never recomputed
//   - TotalActual is what was physically handed over; it may be overridden when checking starts
//   - Completion is idempotent
type Batch struct {
	id          kernel.UUID
	code        string
	courierID   kernel.UUID
	totalSystem kernel.Money
	totalActual kernel.Money
	status      Status
	checkedBy   *kernel.UUID
	checkedAt   *time.Time
	notes       string
	memberIDs   []kernel.UUID
	createdAt   time.Time
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewBatch creates a pending batch from the given records and attaches them.
//
// Returns:
//   - ErrEmptySelection when members is empty
//   - ErrInconsistentState when a record belongs to another courier or cannot join
func NewBatch(id kernel.UUID, code string, courierID kernel.UUID, members []*collection.Submission, notes string) (*Batch, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: courier %s has no records to batch", errs.ErrEmptySelection, courierID)
	}

	now := time.Now().UTC()
	b := &Batch{
		status:    Pending,
		notes:     strings.TrimSpace(notes),
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setCode(code),
		b.setCourier(courierID),
	); err != nil {
		return nil, err
	}

	system := make([]kernel.Money, 0, len(members))
	actual := make([]kernel.Money, 0, len(members))
	for _, m := range members {
		if !m.CourierID().IsEqual(courierID) {
			return nil, errs.NewInconsistentStateError("collection record", m.ID(), "belongs to another courier")
		}
		if err := m.AttachTo(id); err != nil {
			return nil, err
		}
		system = append(system, m.SystemAmount())
		actual = append(actual, m.ActualAmount())
		b.memberIDs = append(b.memberIDs, m.ID())
	}
	b.totalSystem = kernel.SumMoney(system...)
	b.totalActual = kernel.SumMoney(actual...)

	return b, nil
}

// Snapshot is the persisted state of a batch.
type Snapshot struct {
	ID          kernel.UUID
	Code        string
	CourierID   kernel.UUID
	TotalSystem kernel.Money
	TotalActual kernel.Money
	Status      Status
	CheckedBy   *kernel.UUID
	CheckedAt   *time.Time
	Notes       string
	MemberIDs   []kernel.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RestoreBatch(snap Snapshot) (*Batch, error) {
	b := &Batch{
		totalSystem: snap.TotalSystem,
		totalActual: snap.TotalActual,
		checkedBy:   snap.CheckedBy,
		checkedAt:   snap.CheckedAt,
		notes:       snap.Notes,
		memberIDs:   append([]kernel.UUID(nil), snap.MemberIDs...),
		createdAt:   snap.CreatedAt,
		updatedAt:   snap.UpdatedAt,
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		b.setID(snap.ID),
		b.setCode(snap.Code),
		b.setCourier(snap.CourierID),
		snap.Status.Validate(),
	); err != nil {
		return nil, err
	}
	b.status = snap.Status
	return b, nil
}

func (b *Batch) Snapshot() Snapshot {
	return Snapshot{
		ID:          b.id,
		Code:        b.code,
		CourierID:   b.courierID,
		TotalSystem: b.totalSystem,
		TotalActual: b.totalActual,
		Status:      b.status,
		CheckedBy:   b.checkedBy,
		CheckedAt:   b.checkedAt,
		Notes:       b.notes,
		MemberIDs:   b.MemberIDs(),
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.updatedAt,
	}
}

func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b *Batch) ID() kernel.UUID           { return b.id }
func (b *Batch) Code() string              { return b.code }
func (b *Batch) CourierID() kernel.UUID    { return b.courierID }
func (b *Batch) TotalSystem() kernel.Money { return b.totalSystem }
func (b *Batch) TotalActual() kernel.Money { return b.totalActual }
func (b *Batch) Status() Status            { return b.status }
func (b *Batch) CheckedBy() *kernel.UUID   { return b.checkedBy }
func (b *Batch) CheckedAt() *time.Time     { return b.checkedAt }
func (b *Batch) Notes() string             { return b.notes }

func (b *Batch) MemberIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), b.memberIDs...)
}

// Discrepancy is TotalActual - TotalSystem.
func (b *Batch) Discrepancy() kernel.Money {
	return b.totalActual.Sub(b.totalSystem)
}

// StartChecking moves a pending batch under review. confirmedActual, when
// given, is the amount the reconciler counted and replaces TotalActual.
func (b *Batch) StartChecking(reconcilerID kernel.UUID, confirmedActual *kernel.Money) error {
	if b.status != Pending {
		return errs.NewInvalidTransitionError("batch", b.status, Checking)
	}
	if confirmedActual != nil {
		if err := confirmedActual.ValidateNonNegative("confirmedActual"); err != nil {
			return err
		}
		b.totalActual = *confirmedActual
	}
	b.status = Checking
	b.stamp(reconcilerID)
	return nil
}

// Outcome describes what Complete did.
type Outcome struct {
	Status Status
	// AmountMismatch is set when totals disagreed and the batch went Partial.
	AmountMismatch bool
	Discrepancy    kernel.Money
	// Mismatched lists the members settled as Mismatched by this call.
	Mismatched []kernel.UUID
	// Unchanged is set when the batch was already completed.
	Unchanged bool
}

// Complete evaluates the batch.
//
// From Checking: equal totals complete the batch and match every member;
// unequal totals make it Partial, members with their own discrepancy become
// Mismatched and the rest Matched. When the confirmed total disagrees with
// what the members declare, every member becomes Mismatched. From Partial:
// the batch completes once no member is still Mismatched and the members'
// actual amounts add up to the batch total. An already completed batch is
// left as is.
//
// members must be exactly the batch's records.
func (b *Batch) Complete(reconcilerID kernel.UUID, members []*collection.Submission) (Outcome, error) {
	if b.status == Completed {
		return Outcome{Status: Completed, Discrepancy: b.Discrepancy(), Unchanged: true}, nil
	}
	if err := b.checkMembers(members); err != nil {
		return Outcome{}, err
	}

	switch b.status {
	case Checking:
		return b.evaluate(reconcilerID, members)
	case Partial:
		for _, m := range members {
			if m.Status() == collection.Mismatched {
				return Outcome{}, fmt.Errorf("%w: batch %s still has mismatched record %s",
					errs.ErrInvalidTransition, b.code, m.Code())
			}
		}
		if declared := declaredActual(members); !declared.Equal(b.totalActual) {
			return Outcome{}, fmt.Errorf("%w: batch %s records add up to %s, counted %s",
				errs.ErrInvalidTransition, b.code, declared, b.totalActual)
		}
		b.status = Completed
		b.stamp(reconcilerID)
		return Outcome{Status: Completed, Discrepancy: b.Discrepancy()}, nil
	default:
		return Outcome{}, errs.NewInvalidTransitionError("batch", b.status, Completed)
	}
}

// IsSettleable reports a Partial batch whose mismatches have all been resolved.
func (b *Batch) IsSettleable(members []*collection.Submission) bool {
	if b.status != Partial {
		return false
	}
	for _, m := range members {
		if m.Status() == collection.Mismatched {
			return false
		}
	}
	return declaredActual(members).Equal(b.totalActual)
}

// Cancel drops a pending batch and releases its records.
func (b *Batch) Cancel(actorID kernel.UUID, members []*collection.Submission) error {
	if !b.status.CanTransitionTo(Cancelled) {
		return errs.NewInvalidTransitionError("batch", b.status, Cancelled)
	}
	if err := b.checkMembers(members); err != nil {
		return err
	}
	for _, m := range members {
		m.Detach()
	}
	b.memberIDs = nil
	b.status = Cancelled
	b.stamp(actorID)
	return nil
}

func (b *Batch) evaluate(reconcilerID kernel.UUID, members []*collection.Submission) (Outcome, error) {
	if b.totalSystem.Equal(b.totalActual) {
		for _, m := range members {
			if err := m.Settle(true); err != nil {
				return Outcome{}, err
			}
		}
		b.status = Completed
		b.stamp(reconcilerID)
		return Outcome{Status: Completed, Discrepancy: kernel.ZeroMoney()}, nil
	}

	out := Outcome{Status: Partial, AmountMismatch: true, Discrepancy: b.Discrepancy()}
	counted := declaredActual(members).Equal(b.totalActual)
	for _, m := range members {
		matched := counted && m.Discrepancy().IsZero()
		if err := m.Settle(matched); err != nil {
			return Outcome{}, err
		}
		if !matched {
			out.Mismatched = append(out.Mismatched, m.ID())
		}
	}
	b.status = Partial
	b.stamp(reconcilerID)
	return out, nil
}

func declaredActual(members []*collection.Submission) kernel.Money {
	amounts := make([]kernel.Money, 0, len(members))
	for _, m := range members {
		amounts = append(amounts, m.ActualAmount())
	}
	return kernel.SumMoney(amounts...)
}

func (b *Batch) checkMembers(members []*collection.Submission) error {
	if len(members) != len(b.memberIDs) {
		return errs.NewInconsistentStateError("batch", b.id,
			fmt.Sprintf("expects %d records, got %d", len(b.memberIDs), len(members)))
	}
	want := make(map[kernel.UUID]struct{}, len(b.memberIDs))
	for _, id := range b.memberIDs {
		want[id] = struct{}{}
	}
	for _, m := range members {
		if _, ok := want[m.ID()]; !ok {
			return errs.NewInconsistentStateError("batch", b.id, "record "+m.ID().String()+" is not a member")
		}
	}
	return nil
}

func (b *Batch) stamp(actorID kernel.UUID) {
	now := time.Now().UTC()
	b.checkedBy = &actorID
	b.checkedAt = &now
	b.updatedAt = now
}

func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Batch) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	b.code = code
	return nil
}

func (b *Batch) setCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return fmt.Errorf("courierID: %w", err)
	}
	b.courierID = courierID
	return nil
}
