package service

import (
	"context"

	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// LeaseService manages leases and their billing settings. Lease lifecycle is
// owned elsewhere in the platform; the billing engine needs creation for
// seeding, reads for generation and the per-lease billing knobs.
type LeaseService interface {
	CreateLease(ctx context.Context, l *lease.Lease) (*lease.Lease, error)
	GetLease(ctx context.Context, id string) (*lease.Lease, error)
	ListActiveLeases(ctx context.Context) ([]*lease.Lease, error)
	UpsertBillingSetting(ctx context.Context, setting *lease.BillingSetting) (*lease.BillingSetting, error)
	// EffectiveProrationMethod resolves the lease's configured method,
	// falling back to the engine-wide default when no setting exists
	EffectiveProrationMethod(ctx context.Context, leaseID string) (types.ProrationMethod, error)
}

type leaseService struct {
	ServiceParams
}

func NewLeaseService(params ServiceParams) LeaseService {
	return &leaseService{ServiceParams: params}
}

func (s *leaseService) CreateLease(ctx context.Context, l *lease.Lease) (*lease.Lease, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if l.ID == "" {
		l.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEASE)
	}
	l.BaseModel = types.GetDefaultBaseModel(ctx)
	if l.Version == 0 {
		l.Version = 1
	}

	for _, term := range l.RentTerms {
		if term.ID == "" {
			term.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RENT_TERM)
		}
		term.LeaseID = l.ID
		term.BaseModel = l.BaseModel
	}
	for _, charge := range l.RecurringCharges {
		if charge.ID == "" {
			charge.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECURRING_CHARGE)
		}
		charge.LeaseID = l.ID
		charge.BaseModel = l.BaseModel
	}

	if err := s.LeaseRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *leaseService) GetLease(ctx context.Context, id string) (*lease.Lease, error) {
	return s.LeaseRepo.Get(ctx, id)
}

func (s *leaseService) ListActiveLeases(ctx context.Context) ([]*lease.Lease, error) {
	return s.LeaseRepo.ListByStatus(ctx, types.LeaseStatusActive)
}

func (s *leaseService) UpsertBillingSetting(ctx context.Context, setting *lease.BillingSetting) (*lease.BillingSetting, error) {
	if setting.LeaseID == "" {
		return nil, ierr.NewError("lease id is required").
			Mark(ierr.ErrValidation)
	}
	if err := setting.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.LeaseRepo.Get(ctx, setting.LeaseID); err != nil {
		return nil, err
	}

	if setting.ID == "" {
		setting.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEASE_BILLING_SETTING)
	}
	setting.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.LeaseRepo.UpsertBillingSetting(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *leaseService) EffectiveProrationMethod(ctx context.Context, leaseID string) (types.ProrationMethod, error) {
	setting, err := s.LeaseRepo.GetBillingSetting(ctx, leaseID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return s.Config.Billing.DefaultProrationMethod, nil
		}
		return "", err
	}
	return setting.ProrationMethod, nil
}
