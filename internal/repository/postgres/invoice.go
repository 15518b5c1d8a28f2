package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chethandvg/tenantmanagement/internal/domain/invoice"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	pgclient "github.com/chethandvg/tenantmanagement/internal/postgres"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type invoiceRepository struct {
	client pgclient.IClient
	logger *logger.Logger
}

func NewInvoiceRepository(client pgclient.IClient, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{client: client, logger: logger}
}

const invoiceColumns = `
	id, lease_id, invoice_number, invoice_status, period_start, period_end,
	subtotal, tax_total, total, amount_paid, balance,
	issued_at, paid_at, voided_at, void_reason, version,
	organization_id, status, created_at, updated_at, created_by, updated_by`

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	return r.client.WithTx(ctx, func(txCtx context.Context) error {
		q := r.client.Querier(txCtx)

		_, err := q.ExecContext(txCtx, `
			INSERT INTO invoices (`+invoiceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
			inv.ID, inv.LeaseID, inv.InvoiceNumber, inv.InvoiceStatus, inv.PeriodStart, inv.PeriodEnd,
			inv.Subtotal, inv.TaxTotal, inv.Total, inv.AmountPaid, inv.Balance,
			inv.IssuedAt, inv.PaidAt, inv.VoidedAt, inv.VoidReason, inv.Version,
			inv.OrganizationID, inv.Status, inv.CreatedAt, inv.UpdatedAt, inv.CreatedBy, inv.UpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ierr.WithError(err).
					WithHint("An invoice already exists for this lease and period").
					Mark(ierr.ErrAlreadyExists)
			}
			return ierr.WithError(err).
				WithHint("failed to insert invoice").
				Mark(ierr.ErrDatabase)
		}

		return r.insertLineItems(txCtx, inv)
	})
}

func (r *invoiceRepository) insertLineItems(ctx context.Context, inv *invoice.Invoice) error {
	q := r.client.Querier(ctx)
	for _, line := range inv.LineItems {
		_, err := q.ExecContext(ctx, `
			INSERT INTO invoice_line_items (
				id, invoice_id, line_number, charge_type_id, description,
				amount, tax_amount, total_amount, source, source_ref_id,
				organization_id, status, created_at, updated_at, created_by, updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			line.ID, inv.ID, line.LineNumber, line.ChargeTypeID, line.Description,
			line.Amount, line.TaxAmount, line.TotalAmount, line.Source, line.SourceRefID,
			line.OrganizationID, line.Status, line.CreatedAt, line.UpdatedAt, line.CreatedBy, line.UpdatedBy,
		)
		if err != nil {
			return ierr.WithError(err).
				WithHint("failed to insert invoice line item").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	q := r.client.Querier(ctx)

	var inv invoice.Invoice
	err := sqlx.GetContext(ctx, q, &inv, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1 AND organization_id = $2 AND status != $3`,
		id, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("invoice not found").
				WithHintf("Invoice with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLineItems(ctx, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) loadLineItems(ctx context.Context, inv *invoice.Invoice) error {
	q := r.client.Querier(ctx)
	err := sqlx.SelectContext(ctx, q, &inv.LineItems, `
		SELECT id, invoice_id, line_number, charge_type_id, description,
		       amount, tax_amount, total_amount, source, source_ref_id,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM invoice_line_items
		WHERE invoice_id = $1 AND status != $2
		ORDER BY line_number ASC`,
		inv.ID, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to load invoice line items").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	q := r.client.Querier(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE invoices
		SET invoice_status = $1, amount_paid = $2, balance = $3,
		    issued_at = $4, paid_at = $5, voided_at = $6, void_reason = $7,
		    version = version + 1, updated_at = now(), updated_by = $8
		WHERE id = $9 AND organization_id = $10 AND version = $11 AND status != $12`,
		inv.InvoiceStatus, inv.AmountPaid, inv.Balance,
		inv.IssuedAt, inv.PaidAt, inv.VoidedAt, inv.VoidReason,
		types.GetUserID(ctx), inv.ID, types.GetOrganizationID(ctx), inv.Version, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := requireRowAffected(res, "invoice", inv.ID); err != nil {
		return err
	}
	inv.Version++
	return nil
}

func (r *invoiceRepository) ReplaceLineItems(ctx context.Context, inv *invoice.Invoice) error {
	return r.client.WithTx(ctx, func(txCtx context.Context) error {
		q := r.client.Querier(txCtx)

		res, err := q.ExecContext(txCtx, `
			UPDATE invoices
			SET subtotal = $1, tax_total = $2, total = $3, balance = $4,
			    version = version + 1, updated_at = now(), updated_by = $5
			WHERE id = $6 AND organization_id = $7 AND version = $8
			  AND invoice_status = $9 AND status != $10`,
			inv.Subtotal, inv.TaxTotal, inv.Total, inv.Balance,
			types.GetUserID(txCtx), inv.ID, types.GetOrganizationID(txCtx), inv.Version,
			types.InvoiceStatusDraft, types.StatusDeleted,
		)
		if err != nil {
			return ierr.WithError(err).
				WithHint("failed to update invoice totals").
				Mark(ierr.ErrDatabase)
		}
		if err := requireRowAffected(res, "invoice", inv.ID); err != nil {
			return err
		}

		if _, err := q.ExecContext(txCtx, `
			DELETE FROM invoice_line_items WHERE invoice_id = $1`, inv.ID,
		); err != nil {
			return ierr.WithError(err).
				WithHint("failed to clear invoice line items").
				Mark(ierr.ErrDatabase)
		}

		if err := r.insertLineItems(txCtx, inv); err != nil {
			return err
		}
		inv.Version++
		return nil
	})
}

func (r *invoiceRepository) GetByLeaseAndPeriod(ctx context.Context, leaseID string, periodStart, periodEnd time.Time) (*invoice.Invoice, error) {
	q := r.client.Querier(ctx)

	var inv invoice.Invoice
	err := sqlx.GetContext(ctx, q, &inv, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE lease_id = $1 AND period_start = $2 AND period_end = $3
		  AND organization_id = $4 AND status != $5`,
		leaseID, periodStart, periodEnd, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("invoice not found").
				WithHintf("No invoice for lease %s in the given period", leaseID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to probe invoice for period").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLineItems(ctx, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) ListByLease(ctx context.Context, leaseID string) ([]*invoice.Invoice, error) {
	q := r.client.Querier(ctx)

	var invoices []*invoice.Invoice
	err := sqlx.SelectContext(ctx, q, &invoices, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE lease_id = $1 AND organization_id = $2 AND status != $3
		ORDER BY period_start DESC`,
		leaseID, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	for _, inv := range invoices {
		if err := r.loadLineItems(ctx, inv); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	q := r.client.Querier(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE invoices
		SET status = $1, updated_at = now(), updated_by = $2
		WHERE id = $3 AND organization_id = $4 AND status != $1`,
		types.StatusDeleted, types.GetUserID(ctx), id, types.GetOrganizationID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to read affected row count").
			Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
