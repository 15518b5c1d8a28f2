package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/testutil"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type UtilityChargeServiceSuite struct {
	testutil.BaseServiceTestSuite
	svc UtilityChargeService
}

func TestUtilityChargeService(t *testing.T) {
	suite.Run(t, new(UtilityChargeServiceSuite))
}

func (s *UtilityChargeServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.svc = NewUtilityChargeService(newTestParams(&s.BaseServiceTestSuite))
}

// seedSlabPlan creates a three-tier electricity plan:
//
//	0-100 units at 3.50 (fixed 50), 100-300 at 5.00, above 300 at 7.25
func (s *UtilityChargeServiceSuite) seedSlabPlan() *utility.RatePlan {
	to100 := money("100")
	to300 := money("300")
	plan := &utility.RatePlan{
		UtilityType: types.UtilityTypeElectricity,
		Name:        "Residential tiered",
		Active:      true,
		Slabs: []*utility.RateSlab{
			{SlabOrder: 1, FromUnits: money("0"), ToUnits: &to100, RatePerUnit: money("3.50"), FixedCharge: money("50.00")},
			{SlabOrder: 2, FromUnits: money("100"), ToUnits: &to300, RatePerUnit: money("5.00"), FixedCharge: money("0")},
			{SlabOrder: 3, FromUnits: money("300"), RatePerUnit: money("7.25"), FixedCharge: money("0")},
		},
	}
	created, err := s.svc.CreateRatePlan(s.GetContext(), plan)
	s.Require().NoError(err)
	return created
}

func (s *UtilityChargeServiceSuite) TestDirectAmountPassThrough() {
	result, err := s.svc.ComputeCharge(s.GetContext(), dtoDirect("842.375"))
	s.NoError(err)
	s.False(result.MeterBased)
	s.Equal("842.38", result.TotalAmount.String())
	s.Empty(result.SlabBreakdown)
}

func (s *UtilityChargeServiceSuite) TestMeterFlatRate() {
	result, err := s.svc.ComputeCharge(s.GetContext(), dtoFlat("123.5", "4.75"))
	s.NoError(err)
	s.True(result.MeterBased)
	// 123.5 * 4.75 = 586.625 -> 586.63
	s.Equal("586.63", result.TotalAmount.String())
}

func (s *UtilityChargeServiceSuite) TestSlabPricingSpansTiers() {
	plan := s.seedSlabPlan()

	result, err := s.svc.ComputeCharge(s.GetContext(), dtoSlabs(plan.ID, "350"))
	s.NoError(err)
	s.Len(result.SlabBreakdown, 3)

	// 100*3.50+50, 200*5.00, 50*7.25
	s.Equal("400", result.SlabBreakdown[0].Amount.String())
	s.Equal("1000", result.SlabBreakdown[1].Amount.String())
	s.Equal("362.5", result.SlabBreakdown[2].Amount.String())
	s.Equal("1762.5", result.TotalAmount.String())
}

func (s *UtilityChargeServiceSuite) TestSlabBoundaryStaysInLowerTier() {
	plan := s.seedSlabPlan()

	result, err := s.svc.ComputeCharge(s.GetContext(), dtoSlabs(plan.ID, "100"))
	s.NoError(err)
	s.Len(result.SlabBreakdown, 1)
	s.Equal("400", result.TotalAmount.String())
}

func (s *UtilityChargeServiceSuite) TestZeroConsumptionBillsNothing() {
	plan := s.seedSlabPlan()

	result, err := s.svc.ComputeCharge(s.GetContext(), dtoSlabs(plan.ID, "0"))
	s.NoError(err)
	// Fixed charges apply only to entered tiers
	s.Empty(result.SlabBreakdown)
	s.True(result.TotalAmount.IsZero())
}

func (s *UtilityChargeServiceSuite) TestMeterFlatRateWithFixedCharge() {
	req := dtoFlat("123.5", "4.75")
	req.FixedCharge = money("25.00")

	result, err := s.svc.ComputeCharge(s.GetContext(), req)
	s.NoError(err)
	// round(123.5 * 4.75, 2) + 25 = 586.63 + 25
	s.Equal("611.63", result.TotalAmount.String())

	req.FixedCharge = money("-1.00")
	_, err = s.svc.ComputeCharge(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UtilityChargeServiceSuite) TestInactivePlanRejected() {
	to100 := money("100")
	plan, err := s.svc.CreateRatePlan(s.GetContext(), &utility.RatePlan{
		UtilityType: types.UtilityTypeElectricity,
		Name:        "Retired plan",
		Active:      false,
		Slabs: []*utility.RateSlab{
			{SlabOrder: 1, FromUnits: money("0"), ToUnits: &to100, RatePerUnit: money("3.00"), FixedCharge: money("0")},
			{SlabOrder: 2, FromUnits: money("100"), RatePerUnit: money("4.00"), FixedCharge: money("0")},
		},
	})
	s.Require().NoError(err)

	_, err = s.svc.ComputeCharge(s.GetContext(), dtoSlabs(plan.ID, "10"))
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *UtilityChargeServiceSuite) TestPlanUtilityTypeMismatchRejected() {
	plan := s.seedSlabPlan()

	req := dtoSlabs(plan.ID, "10")
	req.UtilityType = types.UtilityTypeWater
	_, err := s.svc.ComputeCharge(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UtilityChargeServiceSuite) TestUnknownPlanReturnsNotFound() {
	_, err := s.svc.ComputeCharge(s.GetContext(), dtoSlabs("urp_missing", "10"))
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *UtilityChargeServiceSuite) TestNonContiguousSlabsRejectedOnCreate() {
	to100 := money("100")
	plan := &utility.RatePlan{
		UtilityType: types.UtilityTypeWater,
		Name:        "Broken plan",
		Active:      true,
		Slabs: []*utility.RateSlab{
			{SlabOrder: 1, FromUnits: money("0"), ToUnits: &to100, RatePerUnit: money("1.00")},
			{SlabOrder: 2, FromUnits: money("150"), RatePerUnit: money("2.00")},
		},
	}
	_, err := s.svc.CreateRatePlan(s.GetContext(), plan)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
