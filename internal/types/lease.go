package types

import (
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/samber/lo"
)

// LeaseStatus represents the lifecycle state of a lease contract
type LeaseStatus string

const (
	LeaseStatusDraft      LeaseStatus = "Draft"
	LeaseStatusActive     LeaseStatus = "Active"
	LeaseStatusEnded      LeaseStatus = "Ended"
	LeaseStatusTerminated LeaseStatus = "Terminated"
)

func (s LeaseStatus) String() string {
	return string(s)
}

func (s LeaseStatus) Validate() error {
	allowed := []LeaseStatus{
		LeaseStatusDraft,
		LeaseStatusActive,
		LeaseStatusEnded,
		LeaseStatusTerminated,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid lease status").
			WithHint("Please provide a valid lease status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
