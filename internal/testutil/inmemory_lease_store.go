package testutil

import (
	"context"
	"sort"

	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InMemoryLeaseStore implements lease.Repository
type InMemoryLeaseStore struct {
	leases   *InMemoryStore[*lease.Lease]
	settings *InMemoryStore[*lease.BillingSetting]
}

func NewInMemoryLeaseStore() *InMemoryLeaseStore {
	return &InMemoryLeaseStore{
		leases:   NewInMemoryStore[*lease.Lease](),
		settings: NewInMemoryStore[*lease.BillingSetting](),
	}
}

func (s *InMemoryLeaseStore) Create(ctx context.Context, l *lease.Lease) error {
	if l == nil {
		return ierr.NewError("lease cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.leases.Create(ctx, l.ID, copyLease(l))
}

func (s *InMemoryLeaseStore) Get(ctx context.Context, id string) (*lease.Lease, error) {
	l, err := s.leases.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.Status == types.StatusDeleted {
		return nil, ierr.NewError("lease not found").
			WithHintf("Lease with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	out := copyLease(l)
	if setting, err := s.settings.Get(ctx, l.ID); err == nil {
		settingCopy := *setting
		out.BillingSetting = &settingCopy
	}
	return out, nil
}

func (s *InMemoryLeaseStore) Update(ctx context.Context, l *lease.Lease) error {
	stored, err := s.leases.Get(ctx, l.ID)
	if err != nil {
		return err
	}
	if stored.Version != l.Version {
		return ierr.NewError("lease was modified concurrently").
			WithReportableDetails(map[string]any{
				"lease_id":       l.ID,
				"known_version":  l.Version,
				"stored_version": stored.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	updated := copyLease(l)
	updated.Version = stored.Version + 1
	if err := s.leases.Update(ctx, l.ID, updated); err != nil {
		return err
	}
	l.Version = updated.Version
	return nil
}

func (s *InMemoryLeaseStore) ListByStatus(ctx context.Context, status types.LeaseStatus) ([]*lease.Lease, error) {
	orgID := types.GetOrganizationID(ctx)
	items := s.leases.List(ctx, func(_ context.Context, l *lease.Lease) bool {
		return l.Status != types.StatusDeleted &&
			l.OrganizationID == orgID &&
			l.LeaseStatus == status
	})

	result := make([]*lease.Lease, 0, len(items))
	for _, l := range items {
		result = append(result, copyLease(l))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *InMemoryLeaseStore) GetBillingSetting(ctx context.Context, leaseID string) (*lease.BillingSetting, error) {
	setting, err := s.settings.Get(ctx, leaseID)
	if err != nil {
		return nil, ierr.NewError("billing setting not found").
			WithHintf("No billing setting configured for lease %s", leaseID).
			Mark(ierr.ErrNotFound)
	}
	out := *setting
	return &out, nil
}

func (s *InMemoryLeaseStore) UpsertBillingSetting(ctx context.Context, setting *lease.BillingSetting) error {
	out := *setting
	if existing, err := s.settings.Get(ctx, setting.LeaseID); err == nil {
		if existing.Version != setting.Version {
			return ierr.NewError("billing setting was modified concurrently").
				WithReportableDetails(map[string]any{
					"lease_id":       setting.LeaseID,
					"known_version":  setting.Version,
					"stored_version": existing.Version,
				}).
				Mark(ierr.ErrVersionConflict)
		}
		out.Version = existing.Version + 1
		if err := s.settings.Update(ctx, setting.LeaseID, &out); err != nil {
			return err
		}
		setting.Version = out.Version
		return nil
	}
	if out.Version == 0 {
		out.Version = 1
	}
	setting.Version = out.Version
	return s.settings.Create(ctx, setting.LeaseID, &out)
}

func copyLease(l *lease.Lease) *lease.Lease {
	out := *l
	out.RentTerms = make([]*lease.RentTerm, len(l.RentTerms))
	for i, term := range l.RentTerms {
		t := *term
		out.RentTerms[i] = &t
	}
	out.RecurringCharges = make([]*lease.RecurringCharge, len(l.RecurringCharges))
	for i, charge := range l.RecurringCharges {
		c := *charge
		out.RecurringCharges[i] = &c
	}
	if l.BillingSetting != nil {
		setting := *l.BillingSetting
		out.BillingSetting = &setting
	}
	return &out
}
