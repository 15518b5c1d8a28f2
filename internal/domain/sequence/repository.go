package sequence

import (
	"context"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// Repository defines the interface for number sequence persistence.
// NextValue must be serialized at the storage layer: concurrent callers
// always receive distinct, strictly increasing values.
type Repository interface {
	// NextValue atomically increments and returns the counter for the
	// organization in context and the given document kind, creating the
	// sequence on first use
	NextValue(ctx context.Context, kind types.DocumentKind) (int64, error)
}
