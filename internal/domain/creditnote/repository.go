package creditnote

import "context"

// Repository defines the interface for credit note persistence operations.
// Credit notes are never destroyed.
type Repository interface {
	// CreateWithLineItems persists a new credit note and its lines atomically
	CreateWithLineItems(ctx context.Context, creditNote *CreditNote) error

	// Get retrieves a credit note by ID with line items loaded
	Get(ctx context.Context, id string) (*CreditNote, error)

	// Update updates an existing credit note with a version check
	Update(ctx context.Context, creditNote *CreditNote) error

	// ListByInvoice retrieves all credit notes raised against an invoice
	ListByInvoice(ctx context.Context, invoiceID string) ([]*CreditNote, error)
}
