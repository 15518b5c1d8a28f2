package invoicerun

import "context"

// Repository defines the interface for invoice run record persistence
type Repository interface {
	// Create persists a new run record (status Running)
	Create(ctx context.Context, run *InvoiceRun) error

	// Update persists the final accounting of a run
	Update(ctx context.Context, run *InvoiceRun) error

	// Get retrieves a run record by ID
	Get(ctx context.Context, id string) (*InvoiceRun, error)
}
