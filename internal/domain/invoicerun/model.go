package invoicerun

import (
	"time"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InvoiceRun records one bulk generation over all active leases of an
// organization for a billing period.
type InvoiceRun struct {
	ID              string                 `db:"id" json:"id"`
	RunReference    string                 `db:"run_reference" json:"run_reference"`
	RunAt           time.Time              `db:"run_at" json:"run_at"`
	PeriodStart     time.Time              `db:"period_start" json:"period_start"`
	PeriodEnd       time.Time              `db:"period_end" json:"period_end"`
	ProrationMethod types.ProrationMethod  `db:"proration_method" json:"proration_method"`
	RunStatus       types.InvoiceRunStatus `db:"run_status" json:"run_status"`
	TotalLeases     int                    `db:"total_leases" json:"total_leases"`
	SuccessCount    int                    `db:"success_count" json:"success_count"`
	FailureCount    int                    `db:"failure_count" json:"failure_count"`
	ErrorMessages   []string               `json:"error_messages,omitempty"`

	types.BaseModel
}
