package service

import (
	"context"
	"time"

	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// UtilityStatementService maintains the versioned statement history per
// (lease, utility type, billing period). New versions supersede without
// destroying; once a version is marked final the key is closed for good.
type UtilityStatementService interface {
	UpsertStatement(ctx context.Context, req dto.UpsertUtilityStatementRequest) (*utility.Statement, error)
	GetStatement(ctx context.Context, id string) (*utility.Statement, error)
	ListStatementVersions(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) ([]*utility.Statement, error)
	GetFinalStatement(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) (*utility.Statement, error)
}

type utilityStatementService struct {
	ServiceParams
	chargeSvc UtilityChargeService
}

func NewUtilityStatementService(params ServiceParams) UtilityStatementService {
	return &utilityStatementService{
		ServiceParams: params,
		chargeSvc:     NewUtilityChargeService(params),
	}
}

func (s *utilityStatementService) UpsertStatement(ctx context.Context, req dto.UpsertUtilityStatementRequest) (*utility.Statement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.LeaseRepo.Get(ctx, req.LeaseID); err != nil {
		return nil, err
	}

	period := types.NewBillingPeriod(req.PeriodStart, req.PeriodEnd)

	versions, err := s.UtilityStatementRepo.ListVersions(ctx, req.LeaseID, req.Charge.UtilityType, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	nextVersion := 1
	for _, v := range versions {
		if v.IsFinal {
			return nil, ierr.NewError("a finalized statement already exists for this period").
				WithReportableDetails(map[string]any{
					"lease_id":     req.LeaseID,
					"utility_type": req.Charge.UtilityType,
					"statement_id": v.ID,
					"version":      v.Version,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		if v.Version >= nextVersion {
			nextVersion = v.Version + 1
		}
	}

	charge, err := s.chargeSvc.ComputeCharge(ctx, req.Charge)
	if err != nil {
		return nil, err
	}

	statement := &utility.Statement{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_UTILITY_STATEMENT),
		LeaseID:       req.LeaseID,
		UtilityType:   charge.UtilityType,
		PeriodStart:   period.Start,
		PeriodEnd:     period.End,
		MeterBased:    charge.MeterBased,
		UnitsConsumed: charge.Units,
		TotalAmount:   charge.TotalAmount,
		SlabBreakdown: charge.SlabBreakdown,
		Version:       nextVersion,
		IsFinal:       req.IsFinal,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if err := statement.Validate(); err != nil {
		return nil, err
	}

	if err := s.UtilityStatementRepo.Create(ctx, statement); err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded utility statement",
		"statement_id", statement.ID,
		"lease_id", statement.LeaseID,
		"utility_type", statement.UtilityType,
		"version", statement.Version,
		"is_final", statement.IsFinal,
		"total_amount", statement.TotalAmount)
	return statement, nil
}

func (s *utilityStatementService) GetStatement(ctx context.Context, id string) (*utility.Statement, error) {
	return s.UtilityStatementRepo.Get(ctx, id)
}

func (s *utilityStatementService) ListStatementVersions(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) ([]*utility.Statement, error) {
	period := types.NewBillingPeriod(periodStart, periodEnd)
	return s.UtilityStatementRepo.ListVersions(ctx, leaseID, utilityType, period.Start, period.End)
}

func (s *utilityStatementService) GetFinalStatement(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) (*utility.Statement, error) {
	period := types.NewBillingPeriod(periodStart, periodEnd)
	return s.UtilityStatementRepo.GetFinal(ctx, leaseID, utilityType, period.Start, period.End)
}
