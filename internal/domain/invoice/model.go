package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// Invoice is an immutable-once-issued financial document for one lease and
// billing period. Content (lines, totals) is frozen outside Draft; only the
// payment progression and void fields may change afterwards.
type Invoice struct {
	ID            string              `db:"id" json:"id"`
	LeaseID       string              `db:"lease_id" json:"lease_id"`
	InvoiceNumber string              `db:"invoice_number" json:"invoice_number"`
	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	PeriodStart   time.Time           `db:"period_start" json:"period_start"`
	PeriodEnd     time.Time           `db:"period_end" json:"period_end"`
	Subtotal      decimal.Decimal     `db:"subtotal" json:"subtotal"`
	TaxTotal      decimal.Decimal     `db:"tax_total" json:"tax_total"`
	Total         decimal.Decimal     `db:"total" json:"total"`
	AmountPaid    decimal.Decimal     `db:"amount_paid" json:"amount_paid"`
	Balance       decimal.Decimal     `db:"balance" json:"balance"`
	IssuedAt      *time.Time          `db:"issued_at" json:"issued_at,omitempty"`
	PaidAt        *time.Time          `db:"paid_at" json:"paid_at,omitempty"`
	VoidedAt      *time.Time          `db:"voided_at" json:"voided_at,omitempty"`
	VoidReason    string              `db:"void_reason" json:"void_reason,omitempty"`
	LineItems     []*LineItem         `json:"line_items,omitempty"`
	Version       int                 `db:"version" json:"version"`

	types.BaseModel
}

func (i *Invoice) Validate() error {
	if err := i.InvoiceStatus.Validate(); err != nil {
		return err
	}
	if i.PeriodEnd.Before(i.PeriodStart) {
		return ierr.NewError("period end must not be before period start").
			Mark(ierr.ErrValidation)
	}
	if i.Total.IsNegative() {
		return ierr.NewError("invoice total must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if i.AmountPaid.IsNegative() {
		return ierr.NewError("amount paid must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if i.AmountPaid.GreaterThan(i.Total) {
		return ierr.NewError("amount paid must not exceed invoice total").
			Mark(ierr.ErrValidation)
	}
	if !i.AmountPaid.Add(i.Balance).Equal(i.Total) {
		return ierr.NewError("balance must equal total minus amount paid").
			WithReportableDetails(map[string]any{
				"total":       i.Total,
				"amount_paid": i.AmountPaid,
				"balance":     i.Balance,
			}).
			Mark(ierr.ErrValidation)
	}
	if !i.Subtotal.Add(i.TaxTotal).Equal(i.Total) {
		return ierr.NewError("total must equal subtotal plus tax").
			Mark(ierr.ErrValidation)
	}
	for idx, item := range i.LineItems {
		if item.LineNumber != idx+1 {
			return ierr.NewError("line numbers must form a dense 1..N sequence").
				WithReportableDetails(map[string]any{
					"expected": idx + 1,
					"got":      item.LineNumber,
				}).
				Mark(ierr.ErrValidation)
		}
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeTotals derives the invoice totals from its line collection.
// Paid amount is preserved; balance is re-derived from it.
func (i *Invoice) RecomputeTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	total := decimal.Zero
	for _, item := range i.LineItems {
		subtotal = subtotal.Add(item.Amount)
		tax = tax.Add(item.TaxAmount)
		total = total.Add(item.TotalAmount)
	}
	i.Subtotal = subtotal
	i.TaxTotal = tax
	i.Total = total
	i.Balance = i.Total.Sub(i.AmountPaid)
}

// IsContentFrozen reports whether line-level regeneration is forbidden
func (i *Invoice) IsContentFrozen() bool {
	return i.InvoiceStatus != types.InvoiceStatusDraft
}
