package services

import (
	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// Settlement applies the cash consequences of a parcel reaching delivered or
// returned. It mutates the order and returns the collection records to
// persist; it never changes existing records.
type Settlement struct{}

func NewSettlement() Settlement {
	return Settlement{}
}

// OnDelivered creates the records owed after a successful delivery:
//   - a fee record when the customer pays the shipping fee
//   - a COD record when COD is due and no positive record exists for it yet
//
// existing are the order's records already persisted.
func (Settlement) OnDelivered(o *order.Order, existing []*collection.Submission) ([]*collection.Submission, error) {
	if o.Status() != order.Delivered {
		return nil, errs.NewInconsistentStateError("order", o.ID(), "is not delivered")
	}
	courierID := o.CourierID()
	if courierID == nil {
		return nil, errs.NewInconsistentStateError("order", o.ID(), "was delivered without a courier")
	}

	var created []*collection.Submission

	if o.Payer() == order.PayerCustomer && !o.PaymentStatus().IsSettled() {
		if o.ShippingFee().IsPositive() {
			fee, err := collection.NewSubmission(kernel.NewUUID(), kernel.NewCode("PS"), o.ID(), *courierID,
				collection.KindFee, o.ShippingFee(), o.ShippingFee(), "shipping fee")
			if err != nil {
				return nil, err
			}
			created = append(created, fee)
		}
		o.MarkFeePaid()
	}

	if o.CODAmount().IsPositive() && !hasPositive(existing, collection.KindCOD) {
		cod, err := collection.NewSubmission(kernel.NewUUID(), kernel.NewCode("PS"), o.ID(), *courierID,
			collection.KindCOD, o.CODAmount(), o.CODAmount(), "cash on delivery")
		if err != nil {
			return nil, err
		}
		if err := o.MarkCODPending(); err != nil {
			return nil, err
		}
		created = append(created, cod)
	}

	return created, nil
}

// OnReturned re-derives liabilities from the recorded incident and, when
// cash had already been collected, returns a negative refund record for the
// collected total. The original records are left untouched.
func (Settlement) OnReturned(o *order.Order, existing []*collection.Submission) (*collection.Submission, error) {
	if o.Status() != order.Returned {
		return nil, errs.NewInconsistentStateError("order", o.ID(), "is not returned")
	}

	switch o.Incident() {
	case order.IncidentRecipientUnavailable:
		o.ShiftFeeToShop()
	case order.IncidentRecipientRefused:
		o.ClearCOD()
	}

	var (
		collected kernel.Money
		courierID *kernel.UUID
	)
	for _, r := range existing {
		if r.IsRefund() {
			// already refunded
			return nil, nil
		}
		if r.ActualAmount().IsPositive() {
			collected = collected.Add(r.ActualAmount())
			id := r.CourierID()
			courierID = &id
		}
	}
	if !collected.IsPositive() {
		return nil, nil
	}

	refund, err := collection.NewRefund(kernel.NewUUID(), kernel.NewCode("PS"), o.ID(), *courierID, collected,
		"refund of cash collected before return")
	if err != nil {
		return nil, err
	}
	o.MarkRefunded()
	return refund, nil
}

func hasPositive(records []*collection.Submission, kind collection.Kind) bool {
	for _, r := range records {
		if r.Kind() == kind && r.SystemAmount().IsPositive() {
			return true
		}
	}
	return false
}
