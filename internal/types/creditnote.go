package types

import (
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/samber/lo"
)

// CreditNoteReason captures why a credit note was raised against an invoice
type CreditNoteReason string

const (
	CreditNoteReasonDiscount     CreditNoteReason = "Discount"
	CreditNoteReasonRefund       CreditNoteReason = "Refund"
	CreditNoteReasonCorrection   CreditNoteReason = "Correction"
	CreditNoteReasonCancellation CreditNoteReason = "Cancellation"
	CreditNoteReasonBadDebt      CreditNoteReason = "BadDebt"
)

func (r CreditNoteReason) String() string {
	return string(r)
}

func (r CreditNoteReason) Validate() error {
	allowed := []CreditNoteReason{
		CreditNoteReasonDiscount,
		CreditNoteReasonRefund,
		CreditNoteReasonCorrection,
		CreditNoteReasonCancellation,
		CreditNoteReasonBadDebt,
	}
	if !lo.Contains(allowed, r) {
		return ierr.NewError("invalid credit note reason").
			WithHint("Please provide a valid credit note reason").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
