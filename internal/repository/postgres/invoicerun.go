package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/chethandvg/tenantmanagement/internal/domain/invoicerun"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	pgclient "github.com/chethandvg/tenantmanagement/internal/postgres"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type invoiceRunRepository struct {
	client pgclient.IClient
	logger *logger.Logger
}

func NewInvoiceRunRepository(client pgclient.IClient, logger *logger.Logger) invoicerun.Repository {
	return &invoiceRunRepository{client: client, logger: logger}
}

// runRow maps the invoice_runs table; error messages are a text array
type runRow struct {
	invoicerun.InvoiceRun
	Errors pq.StringArray `db:"error_messages"`
}

func (row *runRow) toRun() *invoicerun.InvoiceRun {
	run := row.InvoiceRun
	run.ErrorMessages = []string(row.Errors)
	return &run
}

func (r *invoiceRunRepository) Create(ctx context.Context, run *invoicerun.InvoiceRun) error {
	q := r.client.Querier(ctx)

	_, err := q.ExecContext(ctx, `
		INSERT INTO invoice_runs (
			id, run_reference, run_at, period_start, period_end,
			proration_method, run_status, total_leases, success_count, failure_count,
			error_messages,
			organization_id, status, created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		run.ID, run.RunReference, run.RunAt, run.PeriodStart, run.PeriodEnd,
		run.ProrationMethod, run.RunStatus, run.TotalLeases, run.SuccessCount, run.FailureCount,
		pq.Array(run.ErrorMessages),
		run.OrganizationID, run.Status, run.CreatedAt, run.UpdatedAt, run.CreatedBy, run.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to insert invoice run").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRunRepository) Update(ctx context.Context, run *invoicerun.InvoiceRun) error {
	q := r.client.Querier(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE invoice_runs
		SET run_status = $1, success_count = $2, failure_count = $3,
		    error_messages = $4, updated_at = now(), updated_by = $5
		WHERE id = $6 AND organization_id = $7 AND status != $8`,
		run.RunStatus, run.SuccessCount, run.FailureCount,
		pq.Array(run.ErrorMessages), types.GetUserID(ctx),
		run.ID, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update invoice run").
			Mark(ierr.ErrDatabase)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to read affected row count").
			Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return ierr.NewError("invoice run not found").
			WithHintf("Invoice run with ID %s was not found", run.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *invoiceRunRepository) Get(ctx context.Context, id string) (*invoicerun.InvoiceRun, error) {
	q := r.client.Querier(ctx)

	var row runRow
	err := sqlx.GetContext(ctx, q, &row, `
		SELECT id, run_reference, run_at, period_start, period_end,
		       proration_method, run_status, total_leases, success_count, failure_count,
		       error_messages,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM invoice_runs
		WHERE id = $1 AND organization_id = $2 AND status != $3`,
		id, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("invoice run not found").
				WithHintf("Invoice run with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load invoice run").
			Mark(ierr.ErrDatabase)
	}
	return row.toRun(), nil
}
