package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chethandvg/tenantmanagement/internal/cache"
	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

const ratePlanCacheExpiry = 15 * time.Minute

// UtilityChargeService computes utility amounts in one of three modes:
// pass-through of a billed amount, metered units at a flat rate, or metered
// units priced through a tiered rate plan.
type UtilityChargeService interface {
	ComputeCharge(ctx context.Context, req dto.ComputeUtilityChargeRequest) (*dto.UtilityChargeResult, error)
	CreateRatePlan(ctx context.Context, plan *utility.RatePlan) (*utility.RatePlan, error)
	GetRatePlan(ctx context.Context, id string) (*utility.RatePlan, error)
}

type utilityChargeService struct {
	ServiceParams
}

func NewUtilityChargeService(params ServiceParams) UtilityChargeService {
	return &utilityChargeService{ServiceParams: params}
}

func (s *utilityChargeService) ComputeCharge(ctx context.Context, req dto.ComputeUtilityChargeRequest) (*dto.UtilityChargeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Mode {
	case dto.UtilityChargeModeDirectAmount:
		return &dto.UtilityChargeResult{
			UtilityType: req.UtilityType,
			MeterBased:  false,
			TotalAmount: req.Amount.Round(2),
		}, nil

	case dto.UtilityChargeModeMeterFlatRate:
		return &dto.UtilityChargeResult{
			UtilityType: req.UtilityType,
			MeterBased:  true,
			Units:       req.Units,
			TotalAmount: req.Units.Mul(req.RatePerUnit).Round(2).Add(req.FixedCharge),
		}, nil

	default:
		return s.computeSlabCharge(ctx, req)
	}
}

// computeSlabCharge walks the plan's tiers in order. Each entered tier bills
// its contained units at the tier rate plus the tier's fixed charge, rounded
// per tier. Tiers without units are skipped entirely, so a zero-consumption
// period bills nothing even when the plan carries fixed charges.
func (s *utilityChargeService) computeSlabCharge(ctx context.Context, req dto.ComputeUtilityChargeRequest) (*dto.UtilityChargeResult, error) {
	plan, err := s.GetRatePlan(ctx, req.RatePlanID)
	if err != nil {
		return nil, err
	}
	if plan.UtilityType != req.UtilityType {
		return nil, ierr.NewError("rate plan does not price this utility type").
			WithReportableDetails(map[string]any{
				"rate_plan_id":      plan.ID,
				"plan_utility_type": plan.UtilityType,
				"utility_type":      req.UtilityType,
			}).
			Mark(ierr.ErrValidation)
	}
	if !plan.Active {
		return nil, ierr.NewError("rate plan is not active").
			WithReportableDetails(map[string]any{
				"rate_plan_id": plan.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	if len(plan.Slabs) == 0 {
		return nil, ierr.NewError("rate plan has no slabs").
			WithHint("Configure at least one slab before computing charges").
			Mark(ierr.ErrInvalidOperation)
	}

	total := decimal.Zero
	breakdown := make([]utility.SlabCharge, 0, len(plan.Slabs))
	for _, slab := range plan.Slabs {
		unitsInSlab := slabUnits(req.Units, slab)
		if unitsInSlab.IsZero() {
			continue
		}

		amount := unitsInSlab.Mul(slab.RatePerUnit).Add(slab.FixedCharge).Round(2)
		breakdown = append(breakdown, utility.SlabCharge{
			SlabOrder:   slab.SlabOrder,
			Units:       unitsInSlab,
			RatePerUnit: slab.RatePerUnit,
			FixedCharge: slab.FixedCharge,
			Amount:      amount,
		})
		total = total.Add(amount)
	}

	return &dto.UtilityChargeResult{
		UtilityType:   req.UtilityType,
		MeterBased:    true,
		Units:         req.Units,
		TotalAmount:   total,
		SlabBreakdown: breakdown,
	}, nil
}

// slabUnits clamps total consumption to the portion falling inside the slab
func slabUnits(units decimal.Decimal, slab *utility.RateSlab) decimal.Decimal {
	if units.LessThanOrEqual(slab.FromUnits) {
		return decimal.Zero
	}
	contained := units.Sub(slab.FromUnits)
	if slab.ToUnits != nil {
		width := slab.ToUnits.Sub(slab.FromUnits)
		if contained.GreaterThan(width) {
			contained = width
		}
	}
	return contained
}

func (s *utilityChargeService) CreateRatePlan(ctx context.Context, plan *utility.RatePlan) (*utility.RatePlan, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	if plan.ID == "" {
		plan.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_UTILITY_RATE_PLAN)
	}
	plan.BaseModel = types.GetDefaultBaseModel(ctx)
	for _, slab := range plan.Slabs {
		if slab.ID == "" {
			slab.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_UTILITY_RATE_SLAB)
		}
		slab.RatePlanID = plan.ID
		slab.BaseModel = plan.BaseModel
	}

	if err := s.UtilityRatePlanRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixUtilityRatePlan)
	return plan, nil
}

func (s *utilityChargeService) GetRatePlan(ctx context.Context, id string) (*utility.RatePlan, error) {
	key := cache.GenerateKey(cache.PrefixUtilityRatePlan, id)
	if cached, found := s.Cache.Get(ctx, key); found {
		if plan, ok := cached.(*utility.RatePlan); ok {
			return plan, nil
		}
	}

	plan, err := s.UtilityRatePlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, plan, ratePlanCacheExpiry)
	return plan, nil
}
