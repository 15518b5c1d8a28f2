package invoice

import (
	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// LineItem is one row of an invoice. Source and SourceRefID trace the line
// back to the rent term, recurring charge or utility statement that produced
// it.
type LineItem struct {
	ID           string               `db:"id" json:"id"`
	InvoiceID    string               `db:"invoice_id" json:"invoice_id"`
	LineNumber   int                  `db:"line_number" json:"line_number"`
	ChargeTypeID string               `db:"charge_type_id" json:"charge_type_id"`
	Description  string               `db:"description" json:"description"`
	Amount       decimal.Decimal      `db:"amount" json:"amount"`
	TaxAmount    decimal.Decimal      `db:"tax_amount" json:"tax_amount"`
	TotalAmount  decimal.Decimal      `db:"total_amount" json:"total_amount"`
	Source       types.LineItemSource `db:"source" json:"source"`
	SourceRefID  string               `db:"source_ref_id" json:"source_ref_id"`

	types.BaseModel
}

func (li *LineItem) Validate() error {
	if li.LineNumber < 1 {
		return ierr.NewError("line number must be positive").
			Mark(ierr.ErrValidation)
	}
	if li.Amount.IsNegative() {
		return ierr.NewError("invoice line amount must be non-negative").
			WithReportableDetails(map[string]any{
				"line_number": li.LineNumber,
				"amount":      li.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	if li.TaxAmount.IsNegative() {
		return ierr.NewError("invoice line tax must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if !li.Amount.Add(li.TaxAmount).Equal(li.TotalAmount) {
		return ierr.NewError("line total must equal amount plus tax").
			Mark(ierr.ErrValidation)
	}
	if li.SourceRefID == "" {
		return ierr.NewError("line source reference is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
