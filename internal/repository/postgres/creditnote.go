package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/chethandvg/tenantmanagement/internal/domain/creditnote"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	pgclient "github.com/chethandvg/tenantmanagement/internal/postgres"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type creditNoteRepository struct {
	client pgclient.IClient
	logger *logger.Logger
}

func NewCreditNoteRepository(client pgclient.IClient, logger *logger.Logger) creditnote.Repository {
	return &creditNoteRepository{client: client, logger: logger}
}

const creditNoteColumns = `
	id, credit_note_number, invoice_id, reason, memo, total_amount,
	applied_at, version,
	organization_id, status, created_at, updated_at, created_by, updated_by`

func (r *creditNoteRepository) CreateWithLineItems(ctx context.Context, cn *creditnote.CreditNote) error {
	return r.client.WithTx(ctx, func(txCtx context.Context) error {
		q := r.client.Querier(txCtx)

		_, err := q.ExecContext(txCtx, `
			INSERT INTO credit_notes (`+creditNoteColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			cn.ID, cn.CreditNoteNumber, cn.InvoiceID, cn.Reason, cn.Memo, cn.TotalAmount,
			cn.AppliedAt, cn.Version,
			cn.OrganizationID, cn.Status, cn.CreatedAt, cn.UpdatedAt, cn.CreatedBy, cn.UpdatedBy,
		)
		if err != nil {
			return ierr.WithError(err).
				WithHint("failed to insert credit note").
				Mark(ierr.ErrDatabase)
		}

		for _, line := range cn.LineItems {
			_, err := q.ExecContext(txCtx, `
				INSERT INTO credit_note_line_items (
					id, credit_note_id, line_number, invoice_line_item_id,
					description, amount, total_amount,
					organization_id, status, created_at, updated_at, created_by, updated_by
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				line.ID, cn.ID, line.LineNumber, line.InvoiceLineItemID,
				line.Description, line.Amount, line.TotalAmount,
				line.OrganizationID, line.Status, line.CreatedAt, line.UpdatedAt, line.CreatedBy, line.UpdatedBy,
			)
			if err != nil {
				return ierr.WithError(err).
					WithHint("failed to insert credit note line item").
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

func (r *creditNoteRepository) Get(ctx context.Context, id string) (*creditnote.CreditNote, error) {
	q := r.client.Querier(ctx)

	var cn creditnote.CreditNote
	err := sqlx.GetContext(ctx, q, &cn, `
		SELECT `+creditNoteColumns+`
		FROM credit_notes
		WHERE id = $1 AND organization_id = $2 AND status != $3`,
		id, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("credit note not found").
				WithHintf("Credit note with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load credit note").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLineItems(ctx, &cn); err != nil {
		return nil, err
	}
	return &cn, nil
}

func (r *creditNoteRepository) loadLineItems(ctx context.Context, cn *creditnote.CreditNote) error {
	q := r.client.Querier(ctx)
	err := sqlx.SelectContext(ctx, q, &cn.LineItems, `
		SELECT id, credit_note_id, line_number, invoice_line_item_id,
		       description, amount, total_amount,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM credit_note_line_items
		WHERE credit_note_id = $1 AND status != $2
		ORDER BY line_number ASC`,
		cn.ID, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to load credit note line items").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *creditNoteRepository) Update(ctx context.Context, cn *creditnote.CreditNote) error {
	q := r.client.Querier(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE credit_notes
		SET memo = $1, applied_at = $2,
		    version = version + 1, updated_at = now(), updated_by = $3
		WHERE id = $4 AND organization_id = $5 AND version = $6 AND status != $7`,
		cn.Memo, cn.AppliedAt,
		types.GetUserID(ctx), cn.ID, types.GetOrganizationID(ctx), cn.Version, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update credit note").
			Mark(ierr.ErrDatabase)
	}

	if err := requireRowAffected(res, "credit note", cn.ID); err != nil {
		return err
	}
	cn.Version++
	return nil
}

func (r *creditNoteRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*creditnote.CreditNote, error) {
	q := r.client.Querier(ctx)

	var notes []*creditnote.CreditNote
	err := sqlx.SelectContext(ctx, q, &notes, `
		SELECT `+creditNoteColumns+`
		FROM credit_notes
		WHERE invoice_id = $1 AND organization_id = $2 AND status != $3
		ORDER BY credit_note_number ASC`,
		invoiceID, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list credit notes").
			Mark(ierr.ErrDatabase)
	}

	for _, cn := range notes {
		if err := r.loadLineItems(ctx, cn); err != nil {
			return nil, err
		}
	}
	return notes, nil
}
