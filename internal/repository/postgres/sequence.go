package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/chethandvg/tenantmanagement/internal/domain/sequence"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	pgclient "github.com/chethandvg/tenantmanagement/internal/postgres"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type sequenceRepository struct {
	client pgclient.IClient
	logger *logger.Logger
}

func NewSequenceRepository(client pgclient.IClient, logger *logger.Logger) sequence.Repository {
	return &sequenceRepository{client: client, logger: logger}
}

// NextValue allocates the next counter value in a single atomic statement.
// The upsert takes a row lock, so concurrent callers serialize on the row
// and always observe distinct, strictly increasing values.
func (r *sequenceRepository) NextValue(ctx context.Context, kind types.DocumentKind) (int64, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return 0, ierr.WithError(err).
			WithHint("organization context is required for numbering").
			Mark(ierr.ErrValidation)
	}

	q := r.client.Querier(ctx)

	var value int64
	err := sqlx.GetContext(ctx, q, &value, `
		INSERT INTO number_sequences (id, organization_id, document_kind, last_value, created_at, updated_at)
		VALUES ($1, $2, $3, 1, now(), now())
		ON CONFLICT (organization_id, document_kind)
		DO UPDATE SET last_value = number_sequences.last_value + 1, updated_at = now()
		RETURNING last_value`,
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_NUMBER_SEQUENCE),
		types.GetOrganizationID(ctx), kind,
	)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to allocate sequence value").
			Mark(ierr.ErrDatabase)
	}
	return value, nil
}
