package proration

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// thirtyDayBase is the fixed denominator for the ThirtyDayMonth method,
// regardless of actual period length or calendar month.
var thirtyDayBase = decimal.NewFromInt(30)

// ProrationParams are the inputs to a single proration computation.
// Usage and period bounds are inclusive dates; time-of-day is ignored.
type ProrationParams struct {
	FullAmount  decimal.Decimal
	UsageStart  time.Time
	UsageEnd    time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Method      types.ProrationMethod
}

func (p ProrationParams) Validate() error {
	if p.FullAmount.IsNegative() {
		return ierr.NewError("full amount must be non-negative").
			WithHintf("Got %s", p.FullAmount).
			Mark(ierr.ErrValidation)
	}
	if p.UsageStart.IsZero() || p.UsageEnd.IsZero() {
		return ierr.NewError("usage start and end dates are required").
			Mark(ierr.ErrValidation)
	}
	if p.UsageEnd.Before(p.UsageStart) {
		return ierr.NewError("usage end date cannot be before usage start date").
			Mark(ierr.ErrValidation)
	}
	if p.PeriodStart.IsZero() || p.PeriodEnd.IsZero() {
		return ierr.NewError("billing period start and end dates are required").
			Mark(ierr.ErrValidation)
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return ierr.NewError("billing period end date cannot be before start date").
			Mark(ierr.ErrValidation)
	}
	return p.Method.Validate()
}

// Prorate scales a full monthly amount by the ratio of covered days to the
// method's denominator. The covered days are the inclusive overlap of the
// usage interval with the billing period; an empty overlap yields zero.
// The result is rounded to 2 decimals half-away-from-zero. Pure function:
// no I/O, no suspension.
func Prorate(params ProrationParams) (decimal.Decimal, error) {
	if err := params.Validate(); err != nil {
		return decimal.Zero, err
	}

	overlapStart := types.NormalizeDate(params.UsageStart)
	if ps := types.NormalizeDate(params.PeriodStart); ps.After(overlapStart) {
		overlapStart = ps
	}
	overlapEnd := types.NormalizeDate(params.UsageEnd)
	if pe := types.NormalizeDate(params.PeriodEnd); pe.Before(overlapEnd) {
		overlapEnd = pe
	}

	if overlapEnd.Before(overlapStart) {
		return decimal.Zero, nil
	}

	overlapDays := decimal.NewFromInt(int64(types.DaysInclusive(overlapStart, overlapEnd)))

	var denominator decimal.Decimal
	switch params.Method {
	case types.ProrationMethodThirtyDayMonth:
		denominator = thirtyDayBase
	default:
		denominator = decimal.NewFromInt(int64(types.DaysInclusive(params.PeriodStart, params.PeriodEnd)))
	}

	return params.FullAmount.Mul(overlapDays).Div(denominator).Round(2), nil
}
