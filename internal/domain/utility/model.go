package utility

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// RatePlan is a tiered or flat pricing plan for one utility type. Slabs form
// a contiguous partition of [0, inf): each slab's FromUnits equals the
// previous slab's ToUnits, and the top slab is open-ended.
type RatePlan struct {
	ID          string            `db:"id" json:"id"`
	UtilityType types.UtilityType `db:"utility_type" json:"utility_type"`
	Name        string            `db:"name" json:"name"`
	Active      bool              `db:"active" json:"active"`
	Slabs       []*RateSlab       `json:"slabs,omitempty"`

	types.BaseModel
}

// RateSlab is one tier of a rate plan. FromUnits is inclusive, ToUnits
// exclusive; a nil ToUnits marks the open-ended top tier.
type RateSlab struct {
	ID          string           `db:"id" json:"id"`
	RatePlanID  string           `db:"rate_plan_id" json:"rate_plan_id"`
	SlabOrder   int              `db:"slab_order" json:"slab_order"`
	FromUnits   decimal.Decimal  `db:"from_units" json:"from_units"`
	ToUnits     *decimal.Decimal `db:"to_units" json:"to_units,omitempty"`
	RatePerUnit decimal.Decimal  `db:"rate_per_unit" json:"rate_per_unit"`
	FixedCharge decimal.Decimal  `db:"fixed_charge" json:"fixed_charge"`

	types.BaseModel
}

// Statement is the computed utility bill for one (lease, utility type,
// billing period). Statements are versioned; at most one per key is final.
type Statement struct {
	ID            string            `db:"id" json:"id"`
	LeaseID       string            `db:"lease_id" json:"lease_id"`
	UtilityType   types.UtilityType `db:"utility_type" json:"utility_type"`
	PeriodStart   time.Time         `db:"period_start" json:"period_start"`
	PeriodEnd     time.Time         `db:"period_end" json:"period_end"`
	MeterBased    bool              `db:"meter_based" json:"meter_based"`
	UnitsConsumed decimal.Decimal   `db:"units_consumed" json:"units_consumed"`
	TotalAmount   decimal.Decimal   `db:"total_amount" json:"total_amount"`
	SlabBreakdown []SlabCharge      `json:"slab_breakdown,omitempty"`
	Version       int               `db:"version" json:"version"`
	IsFinal       bool              `db:"is_final" json:"is_final"`

	types.BaseModel
}

// SlabCharge is one row of a tiered statement breakdown
type SlabCharge struct {
	SlabOrder   int             `json:"slab_order"`
	Units       decimal.Decimal `json:"units"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	FixedCharge decimal.Decimal `json:"fixed_charge"`
	Amount      decimal.Decimal `json:"amount"`
}

func (p *RatePlan) Validate() error {
	if err := p.UtilityType.Validate(); err != nil {
		return err
	}
	for idx, slab := range p.Slabs {
		if slab.SlabOrder != idx+1 {
			return ierr.NewError("rate slabs must be ordered 1..M").
				Mark(ierr.ErrValidation)
		}
		if err := slab.Validate(); err != nil {
			return err
		}
		if idx > 0 {
			prev := p.Slabs[idx-1]
			if prev.ToUnits == nil || !prev.ToUnits.Equal(slab.FromUnits) {
				return ierr.NewError("rate slabs must have contiguous boundaries").
					WithReportableDetails(map[string]any{
						"slab_order": slab.SlabOrder,
					}).
					Mark(ierr.ErrValidation)
			}
		}
	}
	return nil
}

func (s *RateSlab) Validate() error {
	if s.FromUnits.IsNegative() {
		return ierr.NewError("slab lower bound must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if s.ToUnits != nil && !s.ToUnits.GreaterThan(s.FromUnits) {
		return ierr.NewError("slab upper bound must exceed its lower bound").
			Mark(ierr.ErrValidation)
	}
	if s.RatePerUnit.IsNegative() {
		return ierr.NewError("slab rate must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if s.FixedCharge.IsNegative() {
		return ierr.NewError("slab fixed charge must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s *Statement) Validate() error {
	if err := s.UtilityType.Validate(); err != nil {
		return err
	}
	if s.LeaseID == "" {
		return ierr.NewError("statement lease reference is required").
			Mark(ierr.ErrValidation)
	}
	if s.PeriodEnd.Before(s.PeriodStart) {
		return ierr.NewError("statement period end must not be before start").
			Mark(ierr.ErrValidation)
	}
	if s.TotalAmount.IsNegative() {
		return ierr.NewError("statement total must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if s.MeterBased && s.UnitsConsumed.IsNegative() {
		return ierr.NewError("units consumed must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
