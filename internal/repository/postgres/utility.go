package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	pgclient "github.com/chethandvg/tenantmanagement/internal/postgres"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type ratePlanRepository struct {
	client pgclient.IClient
	logger *logger.Logger
}

func NewRatePlanRepository(client pgclient.IClient, logger *logger.Logger) utility.RatePlanRepository {
	return &ratePlanRepository{client: client, logger: logger}
}

func (r *ratePlanRepository) Create(ctx context.Context, plan *utility.RatePlan) error {
	return r.client.WithTx(ctx, func(txCtx context.Context) error {
		q := r.client.Querier(txCtx)

		_, err := q.ExecContext(txCtx, `
			INSERT INTO utility_rate_plans (
				id, utility_type, name, active,
				organization_id, status, created_at, updated_at, created_by, updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			plan.ID, plan.UtilityType, plan.Name, plan.Active,
			plan.OrganizationID, plan.Status, plan.CreatedAt, plan.UpdatedAt, plan.CreatedBy, plan.UpdatedBy,
		)
		if err != nil {
			return ierr.WithError(err).
				WithHint("failed to insert rate plan").
				Mark(ierr.ErrDatabase)
		}

		for _, slab := range plan.Slabs {
			_, err := q.ExecContext(txCtx, `
				INSERT INTO utility_rate_slabs (
					id, rate_plan_id, slab_order, from_units, to_units,
					rate_per_unit, fixed_charge,
					organization_id, status, created_at, updated_at, created_by, updated_by
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				slab.ID, plan.ID, slab.SlabOrder, slab.FromUnits, slab.ToUnits,
				slab.RatePerUnit, slab.FixedCharge,
				slab.OrganizationID, slab.Status, slab.CreatedAt, slab.UpdatedAt, slab.CreatedBy, slab.UpdatedBy,
			)
			if err != nil {
				return ierr.WithError(err).
					WithHint("failed to insert rate slab").
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

func (r *ratePlanRepository) Get(ctx context.Context, id string) (*utility.RatePlan, error) {
	q := r.client.Querier(ctx)

	var plan utility.RatePlan
	err := sqlx.GetContext(ctx, q, &plan, `
		SELECT id, utility_type, name, active,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM utility_rate_plans
		WHERE id = $1 AND organization_id = $2 AND status != $3`,
		id, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("rate plan not found").
				WithHintf("Rate plan with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load rate plan").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadSlabs(ctx, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *ratePlanRepository) loadSlabs(ctx context.Context, plan *utility.RatePlan) error {
	q := r.client.Querier(ctx)
	err := sqlx.SelectContext(ctx, q, &plan.Slabs, `
		SELECT id, rate_plan_id, slab_order, from_units, to_units,
		       rate_per_unit, fixed_charge,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM utility_rate_slabs
		WHERE rate_plan_id = $1 AND status != $2
		ORDER BY slab_order ASC`,
		plan.ID, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to load rate slabs").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *ratePlanRepository) ListByUtilityType(ctx context.Context, utilityType types.UtilityType) ([]*utility.RatePlan, error) {
	q := r.client.Querier(ctx)

	var plans []*utility.RatePlan
	err := sqlx.SelectContext(ctx, q, &plans, `
		SELECT id, utility_type, name, active,
		       organization_id, status, created_at, updated_at, created_by, updated_by
		FROM utility_rate_plans
		WHERE utility_type = $1 AND active AND organization_id = $2 AND status != $3
		ORDER BY name ASC`,
		utilityType, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list rate plans").
			Mark(ierr.ErrDatabase)
	}

	for _, plan := range plans {
		if err := r.loadSlabs(ctx, plan); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

type utilityStatementRepository struct {
	client pgclient.IClient
	logger *logger.Logger
}

func NewUtilityStatementRepository(client pgclient.IClient, logger *logger.Logger) utility.StatementRepository {
	return &utilityStatementRepository{client: client, logger: logger}
}

// statementRow maps the statements table; the slab breakdown is stored as a
// JSONB document
type statementRow struct {
	utility.Statement
	SlabBreakdownJSON []byte `db:"slab_breakdown"`
}

func (row *statementRow) toStatement() (*utility.Statement, error) {
	statement := row.Statement
	if len(row.SlabBreakdownJSON) > 0 {
		if err := json.Unmarshal(row.SlabBreakdownJSON, &statement.SlabBreakdown); err != nil {
			return nil, ierr.WithError(err).
				WithHint("failed to decode slab breakdown").
				Mark(ierr.ErrDatabase)
		}
	}
	return &statement, nil
}

const statementColumns = `
	id, lease_id, utility_type, period_start, period_end,
	meter_based, units_consumed, total_amount, slab_breakdown,
	version, is_final,
	organization_id, status, created_at, updated_at, created_by, updated_by`

func (r *utilityStatementRepository) Create(ctx context.Context, statement *utility.Statement) error {
	breakdown, err := json.Marshal(statement.SlabBreakdown)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to encode slab breakdown").
			Mark(ierr.ErrSystem)
	}

	q := r.client.Querier(ctx)
	_, err = q.ExecContext(ctx, `
		INSERT INTO utility_statements (`+statementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		statement.ID, statement.LeaseID, statement.UtilityType, statement.PeriodStart, statement.PeriodEnd,
		statement.MeterBased, statement.UnitsConsumed, statement.TotalAmount, breakdown,
		statement.Version, statement.IsFinal,
		statement.OrganizationID, statement.Status, statement.CreatedAt, statement.UpdatedAt,
		statement.CreatedBy, statement.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A statement with this version already exists for the period").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("failed to insert utility statement").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *utilityStatementRepository) Get(ctx context.Context, id string) (*utility.Statement, error) {
	q := r.client.Querier(ctx)

	var row statementRow
	err := sqlx.GetContext(ctx, q, &row, `
		SELECT `+statementColumns+`
		FROM utility_statements
		WHERE id = $1 AND organization_id = $2 AND status != $3`,
		id, types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("statement not found").
				WithHintf("Statement with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load utility statement").
			Mark(ierr.ErrDatabase)
	}
	return row.toStatement()
}

func (r *utilityStatementRepository) ListVersions(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) ([]*utility.Statement, error) {
	q := r.client.Querier(ctx)

	var rows []*statementRow
	err := sqlx.SelectContext(ctx, q, &rows, `
		SELECT `+statementColumns+`
		FROM utility_statements
		WHERE lease_id = $1 AND utility_type = $2
		  AND period_start = $3 AND period_end = $4
		  AND organization_id = $5 AND status != $6
		ORDER BY version ASC`,
		leaseID, utilityType, periodStart, periodEnd,
		types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list statement versions").
			Mark(ierr.ErrDatabase)
	}

	result := make([]*utility.Statement, 0, len(rows))
	for _, row := range rows {
		statement, err := row.toStatement()
		if err != nil {
			return nil, err
		}
		result = append(result, statement)
	}
	return result, nil
}

func (r *utilityStatementRepository) GetFinal(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) (*utility.Statement, error) {
	q := r.client.Querier(ctx)

	var row statementRow
	err := sqlx.GetContext(ctx, q, &row, `
		SELECT `+statementColumns+`
		FROM utility_statements
		WHERE lease_id = $1 AND utility_type = $2
		  AND period_start = $3 AND period_end = $4
		  AND is_final AND organization_id = $5 AND status != $6`,
		leaseID, utilityType, periodStart, periodEnd,
		types.GetOrganizationID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("no finalized statement found").
				WithHintf("No final %s statement for lease %s in the given period", utilityType, leaseID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to load finalized statement").
			Mark(ierr.ErrDatabase)
	}
	return row.toStatement()
}
