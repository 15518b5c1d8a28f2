package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/testutil"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type RentCalculationServiceSuite struct {
	testutil.BaseServiceTestSuite
	svc RentCalculationService
}

func TestRentCalculationService(t *testing.T) {
	suite.Run(t, new(RentCalculationServiceSuite))
}

func (s *RentCalculationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.svc = NewRentCalculationService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *RentCalculationServiceSuite) calcReq(leaseID string, start, end time.Time, method types.ProrationMethod) dto.CalculationRequest {
	return dto.CalculationRequest{
		LeaseID:     leaseID,
		PeriodStart: start,
		PeriodEnd:   end,
		Method:      method,
	}
}

func (s *RentCalculationServiceSuite) TestFullMonthBillsExactMonthlyRent() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_full", "3100.00", date(2025, time.June, 1))

	// 31-day period fully covered; no proration even under the 30-day base
	result, err := s.svc.CalculateRent(ctx, s.calcReq(
		"lease_full", date(2026, time.January, 1), date(2026, time.January, 31),
		types.ProrationMethodThirtyDayMonth))
	s.NoError(err)
	s.Len(result.LineItems, 1)
	s.Equal("3100", result.Total.String())
	s.False(result.LineItems[0].IsProrated)
}

func (s *RentCalculationServiceSuite) TestMidMonthStartProratesActualDays() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_mid", "10000.00", date(2026, time.January, 15))

	// 17 covered days of a 31-day January
	result, err := s.svc.CalculateRent(ctx, s.calcReq(
		"lease_mid", date(2026, time.January, 1), date(2026, time.January, 31),
		types.ProrationMethodActualDaysInMonth))
	s.NoError(err)
	s.Len(result.LineItems, 1)
	s.Equal("5483.87", result.Total.String())
	s.True(result.LineItems[0].IsProrated)
	s.Equal(date(2026, time.January, 15), result.LineItems[0].PeriodStart)
}

func (s *RentCalculationServiceSuite) TestMidMonthStartProratesThirtyDayBase() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_mid30", "10000.00", date(2026, time.January, 15))

	result, err := s.svc.CalculateRent(ctx, s.calcReq(
		"lease_mid30", date(2026, time.January, 1), date(2026, time.January, 31),
		types.ProrationMethodThirtyDayMonth))
	s.NoError(err)
	s.Equal("5666.67", result.Total.String())
}

func (s *RentCalculationServiceSuite) TestRentChangeMidPeriodSplitsIntoTwoLines() {
	ctx := s.GetContext()
	store := s.GetStores().Lease

	l := &lease.Lease{
		ID:          "lease_split",
		UnitID:      "unit_split",
		LeaseStatus: types.LeaseStatusActive,
		StartDate:   date(2025, time.June, 1),
		Version:     1,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	l.RentTerms = []*lease.RentTerm{
		{
			ID:            "term_old",
			LeaseID:       l.ID,
			MonthlyRent:   money("9000.00"),
			EffectiveFrom: date(2025, time.June, 1),
			EffectiveTo:   ptrTime(date(2026, time.January, 15)),
			BaseModel:     l.BaseModel,
		},
		{
			ID:            "term_new",
			LeaseID:       l.ID,
			MonthlyRent:   money("9600.00"),
			EffectiveFrom: date(2026, time.January, 16),
			BaseModel:     l.BaseModel,
		},
	}
	s.NoError(store.Create(ctx, l))

	result, err := s.svc.CalculateRent(ctx, s.calcReq(
		"lease_split", date(2026, time.January, 1), date(2026, time.January, 31),
		types.ProrationMethodActualDaysInMonth))
	s.NoError(err)
	s.Len(result.LineItems, 2)

	// 15/31 of the old rent, 16/31 of the new, ordered by effective date
	s.Equal("term_old", result.LineItems[0].RentTermID)
	s.Equal("4354.84", result.LineItems[0].Amount.String())
	s.Equal("term_new", result.LineItems[1].RentTermID)
	s.Equal("4954.84", result.LineItems[1].Amount.String())
	s.True(result.LineItems[0].IsProrated)
	s.True(result.LineItems[1].IsProrated)
	s.Equal("9309.68", result.Total.String())
}

func (s *RentCalculationServiceSuite) TestTermOutsidePeriodIsSkipped() {
	ctx := s.GetContext()
	store := s.GetStores().Lease

	l := &lease.Lease{
		ID:          "lease_expired",
		UnitID:      "unit_expired",
		LeaseStatus: types.LeaseStatusActive,
		StartDate:   date(2024, time.January, 1),
		Version:     1,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	l.RentTerms = []*lease.RentTerm{
		{
			ID:            "term_past",
			LeaseID:       l.ID,
			MonthlyRent:   money("8000.00"),
			EffectiveFrom: date(2024, time.January, 1),
			EffectiveTo:   ptrTime(date(2024, time.December, 31)),
			BaseModel:     l.BaseModel,
		},
	}
	s.NoError(store.Create(ctx, l))

	result, err := s.svc.CalculateRent(ctx, s.calcReq(
		"lease_expired", date(2026, time.January, 1), date(2026, time.January, 31),
		types.ProrationMethodActualDaysInMonth))
	s.NoError(err)
	s.Empty(result.LineItems)
	s.True(result.Total.IsZero())
}

func (s *RentCalculationServiceSuite) TestUnknownLeaseReturnsNotFound() {
	_, err := s.svc.CalculateRent(s.GetContext(), s.calcReq(
		"lease_missing", date(2026, time.January, 1), date(2026, time.January, 31),
		types.ProrationMethodActualDaysInMonth))
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *RentCalculationServiceSuite) TestInvalidPeriodRejected() {
	_, err := s.svc.CalculateRent(s.GetContext(), s.calcReq(
		"lease_any", date(2026, time.January, 31), date(2026, time.January, 1),
		types.ProrationMethodActualDaysInMonth))
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
