package creditnote

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// CreditNote is a negative financial document offsetting an issued invoice.
// It never settles the invoice ledger itself; downstream settlement is a
// collaborator concern.
type CreditNote struct {
	ID               string                 `db:"id" json:"id"`
	CreditNoteNumber string                 `db:"credit_note_number" json:"credit_note_number"`
	InvoiceID        string                 `db:"invoice_id" json:"invoice_id"`
	Reason           types.CreditNoteReason `db:"reason" json:"reason"`
	Memo             string                 `db:"memo" json:"memo,omitempty"`
	TotalAmount      decimal.Decimal        `db:"total_amount" json:"total_amount"`
	AppliedAt        *time.Time             `db:"applied_at" json:"applied_at,omitempty"`
	LineItems        []*LineItem            `json:"line_items,omitempty"`
	Version          int                    `db:"version" json:"version"`

	types.BaseModel
}

func (cn *CreditNote) Validate() error {
	if err := cn.Reason.Validate(); err != nil {
		return err
	}
	if cn.InvoiceID == "" {
		return ierr.NewError("credit note invoice reference is required").
			Mark(ierr.ErrValidation)
	}
	if cn.TotalAmount.IsPositive() {
		return ierr.NewError("credit note total must be non-positive").
			WithReportableDetails(map[string]any{
				"total_amount": cn.TotalAmount,
			}).
			Mark(ierr.ErrValidation)
	}
	sum := decimal.Zero
	for idx, item := range cn.LineItems {
		if item.LineNumber != idx+1 {
			return ierr.NewError("credit note line numbers must form a dense 1..N sequence").
				Mark(ierr.ErrValidation)
		}
		if err := item.Validate(); err != nil {
			return err
		}
		sum = sum.Add(item.Amount)
	}
	if len(cn.LineItems) > 0 && !sum.Equal(cn.TotalAmount) {
		return ierr.NewError("credit note total must equal the sum of its lines").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsApplied reports whether the credit note has been issued against the
// invoice ledger
func (cn *CreditNote) IsApplied() bool {
	return cn.AppliedAt != nil
}
