package types

import (
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/samber/lo"
)

// InvoiceRunStatus represents the final accounting of a bulk generation run
type InvoiceRunStatus string

const (
	InvoiceRunStatusRunning             InvoiceRunStatus = "Running"
	InvoiceRunStatusCompleted           InvoiceRunStatus = "Completed"
	InvoiceRunStatusCompletedWithErrors InvoiceRunStatus = "CompletedWithErrors"
	InvoiceRunStatusFailed              InvoiceRunStatus = "Failed"
)

func (s InvoiceRunStatus) String() string {
	return string(s)
}

func (s InvoiceRunStatus) Validate() error {
	allowed := []InvoiceRunStatus{
		InvoiceRunStatusRunning,
		InvoiceRunStatusCompleted,
		InvoiceRunStatusCompletedWithErrors,
		InvoiceRunStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice run status").
			WithHint("Please provide a valid invoice run status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceRunStatusFromCounts derives the final run status from the processed
// lease accounting: zero leases or zero failures complete cleanly, total
// failure fails the run, anything in between completes with errors.
func InvoiceRunStatusFromCounts(total, failures int) InvoiceRunStatus {
	switch {
	case total == 0:
		return InvoiceRunStatusCompleted
	case failures == 0:
		return InvoiceRunStatusCompleted
	case failures == total:
		return InvoiceRunStatusFailed
	default:
		return InvoiceRunStatusCompletedWithErrors
	}
}
