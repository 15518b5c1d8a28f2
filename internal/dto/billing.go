package dto

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// RentLineItem is one rent slice of a billing period, one per applicable
// rent term
type RentLineItem struct {
	RentTermID      string          `json:"rent_term_id"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	FullMonthlyRent decimal.Decimal `json:"full_monthly_rent"`
	Amount          decimal.Decimal `json:"amount"`
	IsProrated      bool            `json:"is_prorated"`
}

// RentCalculationResult is the outcome of computing rent for one lease and
// billing period
type RentCalculationResult struct {
	Total     decimal.Decimal `json:"total"`
	LineItems []RentLineItem  `json:"line_items"`
}

// ChargeLineItem is one recurring charge slice of a billing period
type ChargeLineItem struct {
	RecurringChargeID string          `json:"recurring_charge_id"`
	ChargeTypeID      string          `json:"charge_type_id"`
	Description       string          `json:"description"`
	FullMonthlyAmount decimal.Decimal `json:"full_monthly_amount"`
	Amount            decimal.Decimal `json:"amount"`
	IsProrated        bool            `json:"is_prorated"`
}

// ChargeCalculationResult is the outcome of computing recurring charges for
// one lease and billing period
type ChargeCalculationResult struct {
	Total     decimal.Decimal  `json:"total"`
	LineItems []ChargeLineItem `json:"line_items"`
}

// CalculationRequest are the shared inputs of the rent and recurring charge
// calculators
type CalculationRequest struct {
	LeaseID     string                `json:"lease_id"`
	PeriodStart time.Time             `json:"period_start"`
	PeriodEnd   time.Time             `json:"period_end"`
	Method      types.ProrationMethod `json:"method"`
}

func (r CalculationRequest) Validate() error {
	if r.LeaseID == "" {
		return ierr.NewError("lease id is required").
			Mark(ierr.ErrValidation)
	}
	if err := types.NewBillingPeriod(r.PeriodStart, r.PeriodEnd).Validate(); err != nil {
		return err
	}
	return r.Method.Validate()
}
