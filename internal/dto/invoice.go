package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chethandvg/tenantmanagement/internal/domain/invoice"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// UtilityChargeInput feeds a finalized utility statement total into invoice
// generation. The deployment decides whether utility totals flow through
// invoices; when they do, each input becomes one Utility-sourced line.
type UtilityChargeInput struct {
	StatementID  string            `json:"statement_id"`
	UtilityType  types.UtilityType `json:"utility_type"`
	ChargeTypeID string            `json:"charge_type_id,omitempty"`
	Description  string            `json:"description"`
	Amount       decimal.Decimal   `json:"amount"`
}

func (u UtilityChargeInput) Validate() error {
	if u.StatementID == "" {
		return ierr.NewError("utility statement id is required").
			Mark(ierr.ErrValidation)
	}
	if err := u.UtilityType.Validate(); err != nil {
		return err
	}
	if u.Amount.IsNegative() {
		return ierr.NewError("utility charge amount must be non-negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GenerateInvoiceRequest asks the engine to produce (or regenerate) the
// invoice for one lease and billing period. An empty Method defers to the
// lease's billing setting, then to the engine-wide default.
type GenerateInvoiceRequest struct {
	LeaseID        string                `json:"lease_id"`
	PeriodStart    time.Time             `json:"period_start"`
	PeriodEnd      time.Time             `json:"period_end"`
	Method         types.ProrationMethod `json:"method"`
	UtilityCharges []UtilityChargeInput  `json:"utility_charges,omitempty"`
}

func (r GenerateInvoiceRequest) Validate() error {
	if r.LeaseID == "" {
		return ierr.NewError("lease id is required").
			Mark(ierr.ErrValidation)
	}
	if err := types.NewBillingPeriod(r.PeriodStart, r.PeriodEnd).Validate(); err != nil {
		return err
	}
	if r.Method != "" {
		if err := r.Method.Validate(); err != nil {
			return err
		}
	}
	for _, u := range r.UtilityCharges {
		if err := u.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GenerateInvoiceResponse reports the outcome of one generation attempt.
// Refusals (existing non-draft invoice) are results, not errors: Success is
// false and ErrorMessage carries the reason.
type GenerateInvoiceResponse struct {
	Success      bool             `json:"success"`
	WasUpdated   bool             `json:"was_updated"`
	Invoice      *invoice.Invoice `json:"invoice,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// RecordPaymentRequest reports an externally captured payment against an
// issued invoice
type RecordPaymentRequest struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r RecordPaymentRequest) Validate() error {
	if r.InvoiceID == "" {
		return ierr.NewError("invoice id is required").
			Mark(ierr.ErrValidation)
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("payment amount must be positive").
			WithHintf("Got %s", r.Amount).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// VoidInvoiceRequest voids an issued, unpaid invoice
type VoidInvoiceRequest struct {
	InvoiceID string `json:"invoice_id"`
	Reason    string `json:"reason"`
}
