package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/chethandvg/tenantmanagement/internal/dto"
	"github.com/chethandvg/tenantmanagement/internal/testutil"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type InvoiceRunServiceSuite struct {
	testutil.BaseServiceTestSuite
	svc        InvoiceRunService
	invoiceSvc InvoiceService
}

func TestInvoiceRunService(t *testing.T) {
	suite.Run(t, new(InvoiceRunServiceSuite))
}

func (s *InvoiceRunServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite)
	s.svc = NewInvoiceRunService(params)
	s.invoiceSvc = NewInvoiceService(params)
	seedRentChargeType(s.GetContext(), s.GetStores().ChargeType)
}

func (s *InvoiceRunServiceSuite) runReq() dto.ExecuteInvoiceRunRequest {
	return dto.ExecuteInvoiceRunRequest{
		PeriodStart: date(2026, time.January, 1),
		PeriodEnd:   date(2026, time.January, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	}
}

// freezeInvoiceFor issues the period invoice so that the run's regeneration
// attempt for that lease is refused
func (s *InvoiceRunServiceSuite) freezeInvoiceFor(leaseID string) {
	ctx := s.GetContext()
	resp, err := s.invoiceSvc.GenerateInvoice(ctx, dto.GenerateInvoiceRequest{
		LeaseID:     leaseID,
		PeriodStart: date(2026, time.January, 1),
		PeriodEnd:   date(2026, time.January, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	s.Require().NoError(err)
	_, err = s.invoiceSvc.IssueInvoice(ctx, resp.Invoice.ID)
	s.Require().NoError(err)
}

func (s *InvoiceRunServiceSuite) TestAllLeasesSucceed() {
	ctx := s.GetContext()
	for _, id := range []string{"lease_r1", "lease_r2", "lease_r3"} {
		seedLease(ctx, s.GetStores().Lease, id, "5000.00", date(2025, time.June, 1))
	}

	resp, err := s.svc.ExecuteRun(ctx, s.runReq())
	s.NoError(err)
	s.Equal(types.InvoiceRunStatusCompleted, resp.RunStatus)
	s.Equal(3, resp.TotalLeases)
	s.Equal(3, resp.SuccessCount)
	s.Equal(0, resp.FailureCount)
	s.Require().Len(resp.Results, 3)

	for _, r := range resp.Results {
		s.True(r.Success)
		s.NotEmpty(r.InvoiceID)
		inv, err := s.invoiceSvc.GetInvoice(ctx, r.InvoiceID)
		s.NoError(err)
		s.Equal(types.InvoiceStatusDraft, inv.InvoiceStatus)
	}
}

func (s *InvoiceRunServiceSuite) TestMixedOutcomesCompleteWithErrors() {
	ctx := s.GetContext()
	for _, id := range []string{"lease_ok", "lease_frozen"} {
		seedLease(ctx, s.GetStores().Lease, id, "5000.00", date(2025, time.June, 1))
	}
	s.freezeInvoiceFor("lease_frozen")

	resp, err := s.svc.ExecuteRun(ctx, s.runReq())
	s.NoError(err)
	s.Equal(types.InvoiceRunStatusCompletedWithErrors, resp.RunStatus)
	s.Equal(2, resp.TotalLeases)
	s.Equal(1, resp.SuccessCount)
	s.Equal(1, resp.FailureCount)

	frozen, found := lo.Find(resp.Results, func(r dto.InvoiceRunLeaseResult) bool {
		return r.LeaseID == "lease_frozen"
	})
	s.Require().True(found)
	s.False(frozen.Success)
	s.NotEmpty(frozen.ErrorMessage)

	run, err := s.svc.GetRun(ctx, resp.RunID)
	s.NoError(err)
	s.Equal(types.InvoiceRunStatusCompletedWithErrors, run.RunStatus)
	s.Require().Len(run.ErrorMessages, 1)
	s.Contains(run.ErrorMessages[0], "lease_frozen")
}

func (s *InvoiceRunServiceSuite) TestAllLeasesFail() {
	ctx := s.GetContext()
	for _, id := range []string{"lease_f1", "lease_f2"} {
		seedLease(ctx, s.GetStores().Lease, id, "5000.00", date(2025, time.June, 1))
		s.freezeInvoiceFor(id)
	}

	resp, err := s.svc.ExecuteRun(ctx, s.runReq())
	s.NoError(err)
	s.Equal(types.InvoiceRunStatusFailed, resp.RunStatus)
	s.Equal(0, resp.SuccessCount)
	s.Equal(2, resp.FailureCount)
}

func (s *InvoiceRunServiceSuite) TestZeroLeasesCompletes() {
	resp, err := s.svc.ExecuteRun(s.GetContext(), s.runReq())
	s.NoError(err)
	s.Equal(types.InvoiceRunStatusCompleted, resp.RunStatus)
	s.Equal(0, resp.TotalLeases)
	s.Empty(resp.Results)
}

func (s *InvoiceRunServiceSuite) TestEndedLeasesExcluded() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_active", "5000.00", date(2025, time.June, 1))
	ended := seedLease(ctx, s.GetStores().Lease, "lease_ended", "5000.00", date(2024, time.June, 1))
	ended.LeaseStatus = types.LeaseStatusEnded
	s.Require().NoError(s.GetStores().Lease.Update(ctx, ended))

	resp, err := s.svc.ExecuteRun(ctx, s.runReq())
	s.NoError(err)
	s.Equal(1, resp.TotalLeases)
	s.Equal("lease_active", resp.Results[0].LeaseID)
}

func (s *InvoiceRunServiceSuite) TestRerunRegeneratesDrafts() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_rr", "5000.00", date(2025, time.June, 1))

	first, err := s.svc.ExecuteRun(ctx, s.runReq())
	s.NoError(err)
	s.False(first.Results[0].WasUpdated)

	second, err := s.svc.ExecuteRun(ctx, s.runReq())
	s.NoError(err)
	s.Equal(types.InvoiceRunStatusCompleted, second.RunStatus)
	s.True(second.Results[0].WasUpdated)
	s.Equal(first.Results[0].InvoiceID, second.Results[0].InvoiceID)
}

func (s *InvoiceRunServiceSuite) TestRunRecordPersisted() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_rec", "5000.00", date(2025, time.June, 1))

	resp, err := s.svc.ExecuteRun(ctx, s.runReq())
	s.NoError(err)
	s.NotEmpty(resp.RunReference)

	run, err := s.svc.GetRun(ctx, resp.RunID)
	s.NoError(err)
	s.Equal(resp.RunReference, run.RunReference)
	s.Equal(s.GetClock().NowUTC(), run.RunAt)
	s.Equal(types.ProrationMethodActualDaysInMonth, run.ProrationMethod)
	s.Equal(1, run.TotalLeases)
	s.Equal(1, run.SuccessCount)
}
