package services

import (
	"fmt"

	"logistics/internal/core/domain/model/collection"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CashApportioner splits a handed-over cash total across collection records
// in proportion to their system amounts.
//
// Every share except the last is rounded to Scale decimal places; the last
// share takes whatever remains, so the shares always add up to the total.
//
// Example:
//
//	a := services.NewCashApportioner(0)
//	shares, _ := a.Apportion(kernel.MoneyFromInt(59999),
//	    []kernel.Money{kernel.MoneyFromInt(30000), kernel.MoneyFromInt(20000), kernel.MoneyFromInt(10000)})
//	// shares: 30000, 20000, 9999
type CashApportioner struct {
	scale int32
}

func NewCashApportioner(scale int32) CashApportioner {
	return CashApportioner{scale: scale}
}

// Apportion returns one share per weight, in the same order.
func (a CashApportioner) Apportion(total kernel.Money, weights []kernel.Money) ([]kernel.Money, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: nothing to apportion", errs.ErrNoEligibleRecords)
	}
	if err := total.ValidateNonNegative("totalActual"); err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for i, w := range weights {
		if w.IsNegative() {
			return nil, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("weight %d is negative", i))
		}
		sum = sum.Add(w.Decimal())
	}

	shares := make([]kernel.Money, len(weights))
	assigned := kernel.ZeroMoney()
	last := len(weights) - 1
	for i := 0; i < last; i++ {
		share := kernel.ZeroMoney()
		if !sum.IsZero() {
			share = kernel.NewMoney(total.Decimal().Mul(weights[i].Decimal()).Div(sum)).Round(a.scale)
		}
		// rounding up must never push the remainder below zero
		if remaining := total.Sub(assigned); share.Cmp(remaining) > 0 {
			share = remaining
		}
		shares[i] = share
		assigned = assigned.Add(share)
	}
	shares[last] = total.Sub(assigned)

	return shares, nil
}

// Submit apportions total across records by their system amounts and moves
// each record to InBatch with its share as the actual amount.
func (a CashApportioner) Submit(records []*collection.Submission, total kernel.Money) error {
	weights := make([]kernel.Money, 0, len(records))
	for _, r := range records {
		weights = append(weights, r.SystemAmount())
	}

	shares, err := a.Apportion(total, weights)
	if err != nil {
		return err
	}

	for i, r := range records {
		if err := r.SubmitActual(shares[i]); err != nil {
			return err
		}
	}
	return nil
}
