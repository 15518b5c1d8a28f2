package lease

import (
	"context"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// Repository defines the interface for lease persistence operations.
// Lease writes happen outside the billing engine; the engine only reads and
// relies on the version token to detect concurrent modification.
type Repository interface {
	// Create creates a new lease together with its owned rent terms and
	// recurring charges
	Create(ctx context.Context, lease *Lease) error

	// Get retrieves a lease by ID with rent terms, recurring charges and
	// billing setting loaded
	Get(ctx context.Context, id string) (*Lease, error)

	// Update updates an existing lease; fails with a version conflict when
	// the caller's version token is stale
	Update(ctx context.Context, lease *Lease) error

	// ListByStatus retrieves all leases of the organization in the given
	// lifecycle status, ordered by lease ID ascending
	ListByStatus(ctx context.Context, status types.LeaseStatus) ([]*Lease, error)

	// GetBillingSetting retrieves the billing setting for a lease, or a
	// not-found error when none is configured
	GetBillingSetting(ctx context.Context, leaseID string) (*BillingSetting, error)

	// UpsertBillingSetting creates or replaces the billing setting for a lease
	UpsertBillingSetting(ctx context.Context, setting *BillingSetting) error
}
