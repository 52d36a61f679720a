// Package fee computes shipping fees from a tariff table loaded from
// configuration.
package fee

import (
	"context"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Tariff is the pricing table. Rates are fractions: 0.01 means one percent.
type Tariff struct {
	BaseFees             map[string]decimal.Decimal
	PerKg                decimal.Decimal
	FreeKg               decimal.Decimal
	InterRegionSurcharge decimal.Decimal
	CODRate              decimal.Decimal
	InsuranceRate        decimal.Decimal
	Scale                int32
}

// DefaultTariff is used when configuration names no tariff.
func DefaultTariff() Tariff {
	return Tariff{
		BaseFees: map[string]decimal.Decimal{
			"standard": decimal.NewFromInt(15000),
			"express":  decimal.NewFromInt(30000),
		},
		PerKg:                decimal.NewFromInt(5000),
		FreeKg:               decimal.NewFromInt(1),
		InterRegionSurcharge: decimal.NewFromInt(10000),
		CODRate:              decimal.RequireFromString("0.01"),
		InsuranceRate:        decimal.RequireFromString("0.005"),
		Scale:                0,
	}
}

// TariffOracle implements ports.FeeOracle.
type TariffOracle struct {
	tariff Tariff
}

var _ ports.FeeOracle = (*TariffOracle)(nil)

func NewTariffOracle(tariff Tariff) *TariffOracle {
	normalized := make(map[string]decimal.Decimal, len(tariff.BaseFees))
	for k, v := range tariff.BaseFees {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	tariff.BaseFees = normalized
	return &TariffOracle{tariff: tariff}
}

// ComputeFee prices a parcel:
//
//	base(service) + perKg * ceil(weight - freeKg) + surcharge(if regions differ)
//	+ codRate * cod + insuranceRate * declared value
//
// rounded to the tariff scale.
func (o *TariffOracle) ComputeFee(_ context.Context, q ports.FeeQuery) (kernel.Money, error) {
	base, ok := o.tariff.BaseFees[strings.ToLower(strings.TrimSpace(q.ServiceType))]
	if !ok {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("serviceType",
			fmt.Errorf("no tariff for service %q", q.ServiceType))
	}
	if !q.Weight.IsPositive() {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not positive", q.Weight))
	}

	total := base
	if extra := q.Weight.Sub(o.tariff.FreeKg); extra.IsPositive() {
		total = total.Add(o.tariff.PerKg.Mul(extra.Ceil()))
	}
	if !strings.EqualFold(strings.TrimSpace(q.SenderRegion), strings.TrimSpace(q.RecipientRegion)) {
		total = total.Add(o.tariff.InterRegionSurcharge)
	}
	total = total.Add(o.tariff.CODRate.Mul(q.CODAmount.Decimal()))
	total = total.Add(o.tariff.InsuranceRate.Mul(q.DeclaredValue.Decimal()))

	return kernel.NewMoney(total.Round(o.tariff.Scale)), nil
}
