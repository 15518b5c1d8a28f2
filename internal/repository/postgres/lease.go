package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	pgclient "github.com/chethandvg/tenantmanagement/internal/postgres"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type leaseRepository struct {
	client pgclient.IClient
	logger *logger.Logger
}

func NewLeaseRepository(client pgclient.IClient, logger *logger.Logger) lease.Repository {
	return &leaseRepository{client: client, logger: logger}
}

func (r *leaseRepository) Create(ctx context.Context, l *lease.Lease) error {
	return r.client.WithTx(ctx, func(txCtx context.Context) error {
		q := r.client.Querier(txCtx)

		_, err := q.ExecContext(txCtx, `
			INSERT INTO leases (
				id, unit_id, lease_status, start_date, end_date, version,
				organization_id, status, created_at, updated_at, created_by, updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			l.ID, l.UnitID, l.LeaseStatus, l.StartDate, l.EndDate, l.Version,
			l.OrganizationID, l.Status, l.CreatedAt, l.UpdatedAt, l.CreatedBy, l.UpdatedBy,
		)
		if err != nil {
			return ierr.WithError(err).
				WithHint("failed to insert lease").
				Mark(ierr.ErrDatabase)
		}

		for _, term := range l.RentTerms {
			_, err := q.ExecContext(txCtx, `
				INSERT INTO rent_terms (
					id, lease_id, monthly_rent, effective_from, effective_to,
					organization_id, status, created_at, updated_at, created_by, updated_by
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				term.ID, l.ID, term.MonthlyRent, term.EffectiveFrom, term.EffectiveTo,
				term.OrganizationID, term.Status, term.CreatedAt, term.UpdatedAt, term.CreatedBy, term.UpdatedBy,
			)
			if err != nil {
				return ierr.WithError(err).
					WithHint("failed to insert rent term").
					Mark(ierr.ErrDatabase)
			}
		}

		for _, charge := range l.RecurringCharges {
			_, err := q.ExecContext(txCtx, `
				INSERT INTO recurring_charges (
					id, lease_id, charge_type_id, description, monthly_amount,
					start_date, end_date, frequency, active,
					organization_id, status, created_at, updated_at, created_by, updated_by
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
				charge.ID, l.ID, charge.ChargeTypeID, charge.Description, charge.MonthlyAmount,
				charge.StartDate, charge.EndDate, charge.Frequency, charge.Active,
				charge.OrganizationID, charge.Status, charge.CreatedAt, charge.UpdatedAt, charge.CreatedBy, charge.UpdatedBy,
			)
			if err != nil {
				return ierr.WithError(err).
					WithHint("failed to insert recurring charge").
					Mark(ierr.ErrDatabase)
			}
		}

		return nil
	})
}

func (r *leaseRepository) Get(ctx context.Context, id string) (*lease.Lease, error) {
	q := r.client.Querier(ctx)

	var l lease.Lease
	err := sqlx.GetContext(ctx, q, &l, `
		SELECT id, unit_id, lease_status, start_date, end_date, version,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM leases
		WHERE id = $1 AND organization_id = $2 AND status != $3`,
		id, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("lease not found").
				WithHintf("Lease with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load lease").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadChildren(ctx, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leaseRepository) loadChildren(ctx context.Context, l *lease.Lease) error {
	q := r.client.Querier(ctx)

	err := sqlx.SelectContext(ctx, q, &l.RentTerms, `
		SELECT id, lease_id, monthly_rent, effective_from, effective_to,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM rent_terms
		WHERE lease_id = $1 AND status != $2
		ORDER BY effective_from ASC`,
		l.ID, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to load rent terms").
			Mark(ierr.ErrDatabase)
	}

	err = sqlx.SelectContext(ctx, q, &l.RecurringCharges, `
		SELECT id, lease_id, charge_type_id, description, monthly_amount,
		       start_date, end_date, frequency, active,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM recurring_charges
		WHERE lease_id = $1 AND status != $2
		ORDER BY start_date ASC, id ASC`,
		l.ID, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to load recurring charges").
			Mark(ierr.ErrDatabase)
	}

	setting, err := r.GetBillingSetting(ctx, l.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	l.BillingSetting = setting
	return nil
}

func (r *leaseRepository) Update(ctx context.Context, l *lease.Lease) error {
	q := r.client.Querier(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE leases
		SET unit_id = $1, lease_status = $2, start_date = $3, end_date = $4,
		    version = version + 1, updated_at = now(), updated_by = $5
		WHERE id = $6 AND organization_id = $7 AND version = $8 AND status != $9`,
		l.UnitID, l.LeaseStatus, l.StartDate, l.EndDate,
		types.GetUserID(ctx), l.ID, types.GetOrganizationID(ctx), l.Version, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update lease").
			Mark(ierr.ErrDatabase)
	}

	if err := requireRowAffected(res, "lease", l.ID); err != nil {
		return err
	}
	l.Version++
	return nil
}

func (r *leaseRepository) ListByStatus(ctx context.Context, status types.LeaseStatus) ([]*lease.Lease, error) {
	q := r.client.Querier(ctx)

	var leases []*lease.Lease
	err := sqlx.SelectContext(ctx, q, &leases, `
		SELECT id, unit_id, lease_status, start_date, end_date, version,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM leases
		WHERE organization_id = $1 AND lease_status = $2 AND status != $3
		ORDER BY id ASC`,
		types.GetOrganizationID(ctx), status, types.StatusDeleted,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list leases").
			Mark(ierr.ErrDatabase)
	}

	for _, l := range leases {
		if err := r.loadChildren(ctx, l); err != nil {
			return nil, err
		}
	}
	return leases, nil
}

func (r *leaseRepository) GetBillingSetting(ctx context.Context, leaseID string) (*lease.BillingSetting, error) {
	q := r.client.Querier(ctx)

	var setting lease.BillingSetting
	err := sqlx.GetContext(ctx, q, &setting, `
		SELECT id, lease_id, billing_day, proration_method, version,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM lease_billing_settings
		WHERE lease_id = $1 AND status != $2`,
		leaseID, types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("billing setting not found").
				WithHintf("No billing setting configured for lease %s", leaseID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load billing setting").
			Mark(ierr.ErrDatabase)
	}
	return &setting, nil
}

func (r *leaseRepository) UpsertBillingSetting(ctx context.Context, setting *lease.BillingSetting) error {
	q := r.client.Querier(ctx)

	_, err := q.ExecContext(ctx, `
		INSERT INTO lease_billing_settings (
			id, lease_id, billing_day, proration_method, version,
			organization_id, status, created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, 1, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (lease_id)
		DO UPDATE SET billing_day = EXCLUDED.billing_day,
		              proration_method = EXCLUDED.proration_method,
		              version = lease_billing_settings.version + 1,
		              updated_at = EXCLUDED.updated_at,
		              updated_by = EXCLUDED.updated_by`,
		setting.ID, setting.LeaseID, setting.BillingDay, setting.ProrationMethod,
		setting.OrganizationID, setting.Status, setting.CreatedAt, setting.UpdatedAt,
		setting.CreatedBy, setting.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to upsert billing setting").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
