package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// UtilityChargeMode selects how a utility statement amount is computed
type UtilityChargeMode string

const (
	// UtilityChargeModeDirectAmount takes the billed amount as given
	UtilityChargeModeDirectAmount UtilityChargeMode = "DirectAmount"
	// UtilityChargeModeMeterFlatRate prices metered units at a single rate
	UtilityChargeModeMeterFlatRate UtilityChargeMode = "MeterFlatRate"
	// UtilityChargeModeMeterSlabs prices metered units through a tiered plan
	UtilityChargeModeMeterSlabs UtilityChargeMode = "MeterSlabs"
)

func (m UtilityChargeMode) Validate() error {
	switch m {
	case UtilityChargeModeDirectAmount, UtilityChargeModeMeterFlatRate, UtilityChargeModeMeterSlabs:
		return nil
	}
	return ierr.NewError("invalid utility charge mode").
		WithHint("Please provide a valid utility charge mode").
		Mark(ierr.ErrValidation)
}

// ComputeUtilityChargeRequest computes one utility amount. DirectAmount uses
// Amount; MeterFlatRate uses Units, RatePerUnit and an optional FixedCharge;
// MeterSlabs uses Units and RatePlanID.
type ComputeUtilityChargeRequest struct {
	UtilityType types.UtilityType `json:"utility_type"`
	Mode        UtilityChargeMode `json:"mode"`
	Amount      decimal.Decimal   `json:"amount,omitempty"`
	Units       decimal.Decimal   `json:"units,omitempty"`
	RatePerUnit decimal.Decimal   `json:"rate_per_unit,omitempty"`
	FixedCharge decimal.Decimal   `json:"fixed_charge,omitempty"`
	RatePlanID  string            `json:"rate_plan_id,omitempty"`
}

func (r ComputeUtilityChargeRequest) Validate() error {
	if err := r.UtilityType.Validate(); err != nil {
		return err
	}
	if err := r.Mode.Validate(); err != nil {
		return err
	}
	switch r.Mode {
	case UtilityChargeModeDirectAmount:
		if r.Amount.IsNegative() {
			return ierr.NewError("billed amount must be non-negative").
				Mark(ierr.ErrValidation)
		}
	case UtilityChargeModeMeterFlatRate:
		if r.Units.IsNegative() {
			return ierr.NewError("units consumed must be non-negative").
				Mark(ierr.ErrValidation)
		}
		if r.RatePerUnit.IsNegative() {
			return ierr.NewError("rate per unit must be non-negative").
				Mark(ierr.ErrValidation)
		}
		if r.FixedCharge.IsNegative() {
			return ierr.NewError("fixed charge must be non-negative").
				Mark(ierr.ErrValidation)
		}
	case UtilityChargeModeMeterSlabs:
		if r.Units.IsNegative() {
			return ierr.NewError("units consumed must be non-negative").
				Mark(ierr.ErrValidation)
		}
		if r.RatePlanID == "" {
			return ierr.NewError("rate plan id is required for slab pricing").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// UtilityChargeResult is the computed utility amount with its tier breakdown
// when slab pricing was applied
type UtilityChargeResult struct {
	UtilityType   types.UtilityType    `json:"utility_type"`
	MeterBased    bool                 `json:"meter_based"`
	Units         decimal.Decimal      `json:"units"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	SlabBreakdown []utility.SlabCharge `json:"slab_breakdown,omitempty"`
}

// UpsertUtilityStatementRequest records a new version of the utility
// statement for a (lease, utility type, period) key
type UpsertUtilityStatementRequest struct {
	LeaseID     string                      `json:"lease_id"`
	PeriodStart time.Time                   `json:"period_start"`
	PeriodEnd   time.Time                   `json:"period_end"`
	Charge      ComputeUtilityChargeRequest `json:"charge"`
	IsFinal     bool                        `json:"is_final"`
}

func (r UpsertUtilityStatementRequest) Validate() error {
	if r.LeaseID == "" {
		return ierr.NewError("lease id is required").
			Mark(ierr.ErrValidation)
	}
	if err := types.NewBillingPeriod(r.PeriodStart, r.PeriodEnd).Validate(); err != nil {
		return err
	}
	return r.Charge.Validate()
}
