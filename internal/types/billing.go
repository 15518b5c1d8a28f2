package types

import (
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/samber/lo"
)

// ProrationMethod selects the denominator used when scaling a monthly amount
// to a partial billing period.
type ProrationMethod string

const (
	// ProrationMethodActualDaysInMonth divides by the actual day count of the
	// billing period
	ProrationMethodActualDaysInMonth ProrationMethod = "ActualDaysInMonth"
	// ProrationMethodThirtyDayMonth divides by a fixed 30-day base regardless
	// of the period length
	ProrationMethodThirtyDayMonth ProrationMethod = "ThirtyDayMonth"
)

func (m ProrationMethod) String() string {
	return string(m)
}

func (m ProrationMethod) Validate() error {
	allowed := []ProrationMethod{
		ProrationMethodActualDaysInMonth,
		ProrationMethodThirtyDayMonth,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid proration method").
			WithHint("Please provide a valid proration method").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingFrequency is the cadence of a recurring charge. The engine bills
// only monthly charges; other cadences are skipped during line assembly.
type BillingFrequency string

const (
	BillingFrequencyMonthly   BillingFrequency = "Monthly"
	BillingFrequencyQuarterly BillingFrequency = "Quarterly"
	BillingFrequencyYearly    BillingFrequency = "Yearly"
)

func (f BillingFrequency) String() string {
	return string(f)
}

func (f BillingFrequency) Validate() error {
	allowed := []BillingFrequency{
		BillingFrequencyMonthly,
		BillingFrequencyQuarterly,
		BillingFrequencyYearly,
	}
	if !lo.Contains(allowed, f) {
		return ierr.NewError("invalid billing frequency").
			WithHint("Please provide a valid billing frequency").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LineItemSource tags the logical origin of an invoice line so that every
// money value is traceable back to the contract clause that produced it.
type LineItemSource string

const (
	LineItemSourceRent            LineItemSource = "Rent"
	LineItemSourceRecurringCharge LineItemSource = "RecurringCharge"
	LineItemSourceUtility         LineItemSource = "Utility"
)

func (s LineItemSource) String() string {
	return string(s)
}

// DocumentKind identifies which number sequence a financial document draws
// its number from.
type DocumentKind string

const (
	DocumentKindInvoice    DocumentKind = "Invoice"
	DocumentKindCreditNote DocumentKind = "CreditNote"
)

func (k DocumentKind) String() string {
	return string(k)
}

func (k DocumentKind) Validate() error {
	allowed := []DocumentKind{
		DocumentKindInvoice,
		DocumentKindCreditNote,
	}
	if !lo.Contains(allowed, k) {
		return ierr.NewError("invalid document kind").
			WithHint("Please provide a valid document kind").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DefaultNumberPrefix returns the default document number prefix for the kind
func (k DocumentKind) DefaultNumberPrefix() string {
	switch k {
	case DocumentKindCreditNote:
		return "CN"
	default:
		return "INV"
	}
}

// UtilityType identifies a metered or billed utility
type UtilityType string

const (
	UtilityTypeElectricity UtilityType = "Electricity"
	UtilityTypeWater       UtilityType = "Water"
	UtilityTypeGas         UtilityType = "Gas"
)

func (t UtilityType) String() string {
	return string(t)
}

func (t UtilityType) Validate() error {
	allowed := []UtilityType{
		UtilityTypeElectricity,
		UtilityTypeWater,
		UtilityTypeGas,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid utility type").
			WithHint("Please provide a valid utility type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

const (
	// ChargeTypeCodeRent is the catalog code every rent line resolves to
	ChargeTypeCodeRent = "RENT"
)
