package dto

import (
	"time"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// ExecuteInvoiceRunRequest triggers bulk invoice generation over all active
// leases of the organization for one billing period. An empty Method falls
// back to the engine-wide default.
type ExecuteInvoiceRunRequest struct {
	PeriodStart time.Time             `json:"period_start"`
	PeriodEnd   time.Time             `json:"period_end"`
	Method      types.ProrationMethod `json:"method,omitempty"`
}

func (r ExecuteInvoiceRunRequest) Validate() error {
	if err := types.NewBillingPeriod(r.PeriodStart, r.PeriodEnd).Validate(); err != nil {
		return err
	}
	if r.Method != "" {
		return r.Method.Validate()
	}
	return nil
}

// InvoiceRunLeaseResult is the per-lease outcome of a run
type InvoiceRunLeaseResult struct {
	LeaseID      string `json:"lease_id"`
	Success      bool   `json:"success"`
	WasUpdated   bool   `json:"was_updated"`
	InvoiceID    string `json:"invoice_id,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ExecuteInvoiceRunResponse is the full accounting of one run
type ExecuteInvoiceRunResponse struct {
	RunID        string                  `json:"run_id"`
	RunReference string                  `json:"run_reference"`
	RunStatus    types.InvoiceRunStatus  `json:"run_status"`
	TotalLeases  int                     `json:"total_leases"`
	SuccessCount int                     `json:"success_count"`
	FailureCount int                     `json:"failure_count"`
	Results      []InvoiceRunLeaseResult `json:"results,omitempty"`
}
