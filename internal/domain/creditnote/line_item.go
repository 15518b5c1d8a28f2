package creditnote

import (
	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// LineItem is one row of a credit note. InvoiceLineItemID references the
// invoice line being credited; it is a lookup into the parent invoice, not
// ownership. Amounts are stored negative.
type LineItem struct {
	ID                string          `db:"id" json:"id"`
	CreditNoteID      string          `db:"credit_note_id" json:"credit_note_id"`
	LineNumber        int             `db:"line_number" json:"line_number"`
	InvoiceLineItemID string          `db:"invoice_line_item_id" json:"invoice_line_item_id"`
	Description       string          `db:"description" json:"description"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	TotalAmount       decimal.Decimal `db:"total_amount" json:"total_amount"`

	types.BaseModel
}

func (li *LineItem) Validate() error {
	if li.LineNumber < 1 {
		return ierr.NewError("credit note line number must be positive").
			Mark(ierr.ErrValidation)
	}
	if li.InvoiceLineItemID == "" {
		return ierr.NewError("credit note line must reference an invoice line").
			Mark(ierr.ErrValidation)
	}
	if !li.Amount.IsNegative() {
		return ierr.NewError("credit note line amount must be negative").
			WithReportableDetails(map[string]any{
				"line_number": li.LineNumber,
				"amount":      li.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	if !li.Amount.Equal(li.TotalAmount) {
		return ierr.NewError("credit note line total must equal its amount").
			Mark(ierr.ErrValidation)
	}
	return nil
}
