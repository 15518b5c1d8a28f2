package invoice

import (
	"context"
	"time"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// CreateWithLineItems persists a new invoice and its lines atomically
	CreateWithLineItems(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID with line items loaded
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update updates an existing invoice; the caller's version token must
	// match the stored one or the update fails with a version conflict. On
	// success the stored version is bumped.
	Update(ctx context.Context, invoice *Invoice) error

	// ReplaceLineItems swaps the full line collection of a draft invoice
	// and updates its totals in the same transaction, bumping the version
	ReplaceLineItems(ctx context.Context, invoice *Invoice) error

	// GetByLeaseAndPeriod probes for an invoice covering exactly the given
	// (lease, period start, period end) tuple
	GetByLeaseAndPeriod(ctx context.Context, leaseID string, periodStart, periodEnd time.Time) (*Invoice, error)

	// ListByLease retrieves all invoices of a lease, newest first
	ListByLease(ctx context.Context, leaseID string) ([]*Invoice, error)

	// Delete soft-deletes an invoice; only drafts are ever deleted
	Delete(ctx context.Context, id string) error
}
