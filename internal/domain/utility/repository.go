package utility

import (
	"context"
	"time"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// RatePlanRepository defines rate plan catalog lookups
type RatePlanRepository interface {
	// Create creates a new rate plan with its slabs
	Create(ctx context.Context, plan *RatePlan) error

	// Get retrieves a rate plan by ID with slabs ordered by slab order
	Get(ctx context.Context, id string) (*RatePlan, error)

	// ListByUtilityType retrieves active plans for the given utility type
	ListByUtilityType(ctx context.Context, utilityType types.UtilityType) ([]*RatePlan, error)
}

// StatementRepository defines versioned utility statement persistence.
// History is retained: superseded versions are never deleted.
type StatementRepository interface {
	// Create persists a new statement version
	Create(ctx context.Context, statement *Statement) error

	// Get retrieves a statement by ID
	Get(ctx context.Context, id string) (*Statement, error)

	// ListVersions retrieves all versions for a (lease, utility type,
	// period) key ordered by version ascending
	ListVersions(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) ([]*Statement, error)

	// GetFinal retrieves the finalized statement for the key, or a
	// not-found error when none exists
	GetFinal(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) (*Statement, error)
}
