package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusTransitions(t *testing.T) {
	cases := []struct {
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{InvoiceStatusDraft, InvoiceStatusIssued, true},
		{InvoiceStatusDraft, InvoiceStatusPaid, false},
		{InvoiceStatusDraft, InvoiceStatusVoided, false},
		{InvoiceStatusIssued, InvoiceStatusPartiallyPaid, true},
		{InvoiceStatusIssued, InvoiceStatusPaid, true},
		{InvoiceStatusIssued, InvoiceStatusVoided, true},
		{InvoiceStatusIssued, InvoiceStatusDraft, false},
		{InvoiceStatusPartiallyPaid, InvoiceStatusPaid, true},
		{InvoiceStatusPartiallyPaid, InvoiceStatusVoided, false},
		{InvoiceStatusPartiallyPaid, InvoiceStatusIssued, false},
		{InvoiceStatusPaid, InvoiceStatusVoided, false},
		{InvoiceStatusVoided, InvoiceStatusIssued, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestInvoiceStatusPredicates(t *testing.T) {
	assert.True(t, InvoiceStatusIssued.IsPayable())
	assert.True(t, InvoiceStatusPartiallyPaid.IsPayable())
	assert.False(t, InvoiceStatusDraft.IsPayable())
	assert.False(t, InvoiceStatusPaid.IsPayable())

	assert.True(t, InvoiceStatusPaid.IsTerminal())
	assert.True(t, InvoiceStatusVoided.IsTerminal())
	assert.False(t, InvoiceStatusIssued.IsTerminal())
}

func TestInvoiceRunStatusFromCounts(t *testing.T) {
	assert.Equal(t, InvoiceRunStatusCompleted, InvoiceRunStatusFromCounts(0, 0))
	assert.Equal(t, InvoiceRunStatusCompleted, InvoiceRunStatusFromCounts(5, 0))
	assert.Equal(t, InvoiceRunStatusCompletedWithErrors, InvoiceRunStatusFromCounts(5, 2))
	assert.Equal(t, InvoiceRunStatusFailed, InvoiceRunStatusFromCounts(5, 5))
}
