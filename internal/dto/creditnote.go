package dto

import (
	"github.com/shopspring/decimal"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// CreateCreditNoteLineItemRequest credits part of one invoice line. Amount is
// given as a positive magnitude; the engine stores it negated.
type CreateCreditNoteLineItemRequest struct {
	InvoiceLineItemID string          `json:"invoice_line_item_id"`
	Description       string          `json:"description,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
}

func (r CreateCreditNoteLineItemRequest) Validate() error {
	if r.InvoiceLineItemID == "" {
		return ierr.NewError("invoice line item id is required").
			Mark(ierr.ErrValidation)
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("credit amount must be positive").
			WithHintf("Got %s", r.Amount).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CreateCreditNoteRequest raises a credit note against an issued invoice
type CreateCreditNoteRequest struct {
	InvoiceID string                            `json:"invoice_id"`
	Reason    types.CreditNoteReason            `json:"reason"`
	Memo      string                            `json:"memo,omitempty"`
	LineItems []CreateCreditNoteLineItemRequest `json:"line_items"`
}

func (r CreateCreditNoteRequest) Validate() error {
	if r.InvoiceID == "" {
		return ierr.NewError("invoice id is required").
			Mark(ierr.ErrValidation)
	}
	if err := r.Reason.Validate(); err != nil {
		return err
	}
	if len(r.LineItems) == 0 {
		return ierr.NewError("credit note requires at least one line item").
			Mark(ierr.ErrValidation)
	}
	for _, item := range r.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}
