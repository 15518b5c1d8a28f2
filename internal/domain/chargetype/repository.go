package chargetype

import "context"

// Repository defines the interface for charge type catalog lookups
type Repository interface {
	// Create creates a new charge type
	Create(ctx context.Context, chargeType *ChargeType) error

	// Get retrieves a charge type by ID
	Get(ctx context.Context, id string) (*ChargeType, error)

	// GetByCode resolves a code within the organization scope, falling back
	// to the system-defined entry with the same code
	GetByCode(ctx context.Context, code string) (*ChargeType, error)

	// List retrieves all active charge types visible to the organization
	List(ctx context.Context) ([]*ChargeType, error)
}
