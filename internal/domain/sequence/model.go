package sequence

import (
	"time"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// NumberSequence is a per-(organization, document kind) monotonic counter
// backing document numbers. Issued values are strictly increasing; gaps are
// acceptable under rollback, duplicates are not. The counter is never reset.
type NumberSequence struct {
	ID             string             `db:"id" json:"id"`
	OrganizationID string             `db:"organization_id" json:"organization_id"`
	DocumentKind   types.DocumentKind `db:"document_kind" json:"document_kind"`
	LastValue      int64              `db:"last_value" json:"last_value"`
	CreatedAt      time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updated_at"`
}
