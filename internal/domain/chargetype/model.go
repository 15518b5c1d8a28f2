package chargetype

import (
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// ChargeType is a catalog entry classifying invoice lines (RENT, MAINT,
// UTIL_ELEC, ...). Entries are either organization-scoped or system-defined;
// organization entries shadow system ones with the same code.
type ChargeType struct {
	ID            string `db:"id" json:"id"`
	Code          string `db:"code" json:"code"`
	Name          string `db:"name" json:"name"`
	SystemDefined bool   `db:"system_defined" json:"system_defined"`
	Active        bool   `db:"active" json:"active"`

	types.BaseModel
}

func (c *ChargeType) Validate() error {
	if c.Code == "" {
		return ierr.NewError("charge type code is required").
			Mark(ierr.ErrValidation)
	}
	if c.Name == "" {
		return ierr.NewError("charge type name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
