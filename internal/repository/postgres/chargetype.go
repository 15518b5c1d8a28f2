package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/chethandvg/tenantmanagement/internal/domain/chargetype"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	pgclient "github.com/chethandvg/tenantmanagement/internal/postgres"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type chargeTypeRepository struct {
	client pgclient.IClient
	logger *logger.Logger
}

func NewChargeTypeRepository(client pgclient.IClient, logger *logger.Logger) chargetype.Repository {
	return &chargeTypeRepository{client: client, logger: logger}
}

func (r *chargeTypeRepository) Create(ctx context.Context, ct *chargetype.ChargeType) error {
	q := r.client.Querier(ctx)

	_, err := q.ExecContext(ctx, `
		INSERT INTO charge_types (
			id, code, name, system_defined, active,
			organization_id, status, created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		ct.ID, ct.Code, ct.Name, ct.SystemDefined, ct.Active,
		ct.OrganizationID, ct.Status, ct.CreatedAt, ct.UpdatedAt, ct.CreatedBy, ct.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("Charge type code %s already exists", ct.Code).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("failed to insert charge type").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *chargeTypeRepository) Get(ctx context.Context, id string) (*chargetype.ChargeType, error) {
	q := r.client.Querier(ctx)

	var ct chargetype.ChargeType
	err := sqlx.GetContext(ctx, q, &ct, `
		SELECT id, code, name, system_defined, active,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM charge_types
		WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("charge type not found").
				WithHintf("Charge type with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load charge type").
			Mark(ierr.ErrDatabase)
	}
	return &ct, nil
}

func (r *chargeTypeRepository) GetByCode(ctx context.Context, code string) (*chargetype.ChargeType, error) {
	q := r.client.Querier(ctx)

	// Organization entries shadow system-defined entries with the same code
	var ct chargetype.ChargeType
	err := sqlx.GetContext(ctx, q, &ct, `
		SELECT id, code, name, system_defined, active,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM charge_types
		WHERE code = $1 AND status != $2
		  AND (organization_id = $3 OR system_defined)
		ORDER BY system_defined ASC
		LIMIT 1`,
		code, types.StatusDeleted, types.GetOrganizationID(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("charge type not found").
				WithHintf("No charge type with code %s", code).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to resolve charge type code").
			Mark(ierr.ErrDatabase)
	}
	return &ct, nil
}

func (r *chargeTypeRepository) List(ctx context.Context) ([]*chargetype.ChargeType, error) {
	q := r.client.Querier(ctx)

	var result []*chargetype.ChargeType
	err := sqlx.SelectContext(ctx, q, &result, `
		SELECT id, code, name, system_defined, active,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM charge_types
		WHERE active AND status != $1
		  AND (organization_id = $2 OR system_defined)
		ORDER BY code ASC`,
		types.StatusDeleted, types.GetOrganizationID(ctx),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list charge types").
			Mark(ierr.ErrDatabase)
	}
	return result, nil
}
