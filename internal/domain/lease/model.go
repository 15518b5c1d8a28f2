package lease

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// Lease is the contract between landlord and tenant for a unit. Rent terms
// and recurring charges are owned by the lease; their lifecycle follows it.
type Lease struct {
	ID               string             `db:"id" json:"id"`
	UnitID           string             `db:"unit_id" json:"unit_id"`
	LeaseStatus      types.LeaseStatus  `db:"lease_status" json:"lease_status"`
	StartDate        time.Time          `db:"start_date" json:"start_date"`
	EndDate          *time.Time         `db:"end_date" json:"end_date,omitempty"`
	RentTerms        []*RentTerm        `json:"rent_terms,omitempty"`
	RecurringCharges []*RecurringCharge `json:"recurring_charges,omitempty"`
	BillingSetting   *BillingSetting    `json:"billing_setting,omitempty"`
	Version          int                `db:"version" json:"version"`

	types.BaseModel
}

// RentTerm is a time-bounded monthly rent declaration on a lease. Effective
// intervals of a lease's terms never overlap; adjacent terms are contiguous.
type RentTerm struct {
	ID            string          `db:"id" json:"id"`
	LeaseID       string          `db:"lease_id" json:"lease_id"`
	MonthlyRent   decimal.Decimal `db:"monthly_rent" json:"monthly_rent"`
	EffectiveFrom time.Time       `db:"effective_from" json:"effective_from"`
	EffectiveTo   *time.Time      `db:"effective_to" json:"effective_to,omitempty"`

	types.BaseModel
}

// RecurringCharge is a standing monthly line of money against a lease
// (parking, storage, maintenance and the like).
type RecurringCharge struct {
	ID            string                 `db:"id" json:"id"`
	LeaseID       string                 `db:"lease_id" json:"lease_id"`
	ChargeTypeID  string                 `db:"charge_type_id" json:"charge_type_id"`
	Description   string                 `db:"description" json:"description"`
	MonthlyAmount decimal.Decimal        `db:"monthly_amount" json:"monthly_amount"`
	StartDate     time.Time              `db:"start_date" json:"start_date"`
	EndDate       *time.Time             `db:"end_date" json:"end_date,omitempty"`
	Frequency     types.BillingFrequency `db:"frequency" json:"frequency"`
	Active        bool                   `db:"active" json:"active"`

	types.BaseModel
}

// BillingSetting is the per-lease billing configuration (1:1 with the lease)
type BillingSetting struct {
	ID              string                `db:"id" json:"id"`
	LeaseID         string                `db:"lease_id" json:"lease_id"`
	BillingDay      int                   `db:"billing_day" json:"billing_day"`
	ProrationMethod types.ProrationMethod `db:"proration_method" json:"proration_method"`
	Version         int                   `db:"version" json:"version"`

	types.BaseModel
}

func (l *Lease) Validate() error {
	if err := l.LeaseStatus.Validate(); err != nil {
		return err
	}
	if l.EndDate != nil && l.EndDate.Before(l.StartDate) {
		return ierr.NewError("lease end date cannot be before start date").
			WithReportableDetails(map[string]any{
				"lease_id":   l.ID,
				"start_date": l.StartDate,
				"end_date":   *l.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	for _, term := range l.RentTerms {
		if err := term.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsActive reports whether the lease is eligible for billing
func (l *Lease) IsActive() bool {
	return l.LeaseStatus == types.LeaseStatusActive
}

func (t *RentTerm) Validate() error {
	if t.MonthlyRent.IsNegative() {
		return ierr.NewError("monthly rent must be non-negative").
			WithReportableDetails(map[string]any{
				"rent_term_id": t.ID,
				"monthly_rent": t.MonthlyRent,
			}).
			Mark(ierr.ErrValidation)
	}
	if t.EffectiveTo != nil && t.EffectiveTo.Before(t.EffectiveFrom) {
		return ierr.NewError("rent term effective-to cannot be before effective-from").
			WithReportableDetails(map[string]any{
				"rent_term_id":   t.ID,
				"effective_from": t.EffectiveFrom,
				"effective_to":   *t.EffectiveTo,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (c *RecurringCharge) Validate() error {
	if c.MonthlyAmount.IsNegative() {
		return ierr.NewError("recurring charge amount must be non-negative").
			WithReportableDetails(map[string]any{
				"recurring_charge_id": c.ID,
				"monthly_amount":      c.MonthlyAmount,
			}).
			Mark(ierr.ErrValidation)
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return ierr.NewError("recurring charge end date cannot be before start date").
			Mark(ierr.ErrValidation)
	}
	return c.Frequency.Validate()
}

// IsBillable reports whether the charge participates in monthly invoice
// generation. Non-monthly cadences are handled outside the engine.
func (c *RecurringCharge) IsBillable() bool {
	return c.Active && c.Frequency == types.BillingFrequencyMonthly
}

func (s *BillingSetting) Validate() error {
	if s.BillingDay < 1 || s.BillingDay > 28 {
		return ierr.NewError("billing day must be between 1 and 28").
			WithHintf("Got %d", s.BillingDay).
			Mark(ierr.ErrValidation)
	}
	return s.ProrationMethod.Validate()
}
