package types

import (
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle.
// Draft is the only state in which invoice content may change; Paid and
// Voided are terminal.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "Draft"
	InvoiceStatusIssued        InvoiceStatus = "Issued"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PartiallyPaid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
	InvoiceStatusVoided        InvoiceStatus = "Voided"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusIssued,
		InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid,
		InvoiceStatusVoided,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether no further transition may leave this status
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoided
}

// IsPayable reports whether the invoice can accept payment records
func (s InvoiceStatus) IsPayable() bool {
	return s == InvoiceStatusIssued || s == InvoiceStatusPartiallyPaid
}

// CanTransitionTo reports whether the state machine allows moving from s to
// target. Content regeneration is handled separately and only on Draft.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusIssued
	case InvoiceStatusIssued:
		return target == InvoiceStatusPartiallyPaid ||
			target == InvoiceStatusPaid ||
			target == InvoiceStatusVoided
	case InvoiceStatusPartiallyPaid:
		// voiding requires a clean payment ledger, which a partially paid
		// invoice no longer has
		return target == InvoiceStatusPaid
	default:
		// Paid and Voided are terminal
		return false
	}
}
