package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/testutil"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type LeaseServiceSuite struct {
	testutil.BaseServiceTestSuite
	svc LeaseService
}

func TestLeaseService(t *testing.T) {
	suite.Run(t, new(LeaseServiceSuite))
}

func (s *LeaseServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.svc = NewLeaseService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *LeaseServiceSuite) TestCreateAssignsIdentifiers() {
	created, err := s.svc.CreateLease(s.GetContext(), &lease.Lease{
		UnitID:      "unit_901",
		LeaseStatus: types.LeaseStatusActive,
		StartDate:   date(2025, time.June, 1),
		RentTerms: []*lease.RentTerm{
			{MonthlyRent: money("4200.00"), EffectiveFrom: date(2025, time.June, 1)},
		},
	})
	s.NoError(err)
	s.NotEmpty(created.ID)
	s.Equal(1, created.Version)
	s.Require().Len(created.RentTerms, 1)
	s.NotEmpty(created.RentTerms[0].ID)
	s.Equal(created.ID, created.RentTerms[0].LeaseID)
}

func (s *LeaseServiceSuite) TestEffectiveMethodFallsBackToDefault() {
	seedLease(s.GetContext(), s.GetStores().Lease, "lease_nofb", "4200.00", date(2025, time.June, 1))

	method, err := s.svc.EffectiveProrationMethod(s.GetContext(), "lease_nofb")
	s.NoError(err)
	s.Equal(types.ProrationMethodActualDaysInMonth, method)
}

func (s *LeaseServiceSuite) TestEffectiveMethodUsesBillingSetting() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_fb", "4200.00", date(2025, time.June, 1))

	_, err := s.svc.UpsertBillingSetting(ctx, &lease.BillingSetting{
		LeaseID:         "lease_fb",
		BillingDay:      1,
		ProrationMethod: types.ProrationMethodThirtyDayMonth,
	})
	s.NoError(err)

	method, err := s.svc.EffectiveProrationMethod(ctx, "lease_fb")
	s.NoError(err)
	s.Equal(types.ProrationMethodThirtyDayMonth, method)
}

func (s *LeaseServiceSuite) TestBillingSettingValidation() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_val", "4200.00", date(2025, time.June, 1))

	_, err := s.svc.UpsertBillingSetting(ctx, &lease.BillingSetting{
		LeaseID:         "lease_val",
		BillingDay:      31,
		ProrationMethod: types.ProrationMethodActualDaysInMonth,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.svc.UpsertBillingSetting(ctx, &lease.BillingSetting{
		LeaseID:         "lease_missing",
		BillingDay:      1,
		ProrationMethod: types.ProrationMethodActualDaysInMonth,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
