package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chethandvg/tenantmanagement/internal/domain/invoice"
	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/testutil"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	svc InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.svc = NewInvoiceService(newTestParams(&s.BaseServiceTestSuite))
	seedRentChargeType(s.GetContext(), s.GetStores().ChargeType)
}

func (s *InvoiceServiceSuite) genReq(leaseID string) dto.GenerateInvoiceRequest {
	return dto.GenerateInvoiceRequest{
		LeaseID:     leaseID,
		PeriodStart: date(2026, time.January, 1),
		PeriodEnd:   date(2026, time.January, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	}
}

func (s *InvoiceServiceSuite) seedBillableLease(id string) *lease.Lease {
	ctx := s.GetContext()
	l := seedLease(ctx, s.GetStores().Lease, id, "12000.00", date(2025, time.June, 1))
	return l
}

func (s *InvoiceServiceSuite) TestGenerateCreatesDraftInvoice() {
	s.seedBillableLease("lease_a")

	resp, err := s.svc.GenerateInvoice(s.GetContext(), s.genReq("lease_a"))
	s.NoError(err)
	s.True(resp.Success)
	s.False(resp.WasUpdated)

	inv := resp.Invoice
	s.Equal(types.InvoiceStatusDraft, inv.InvoiceStatus)
	s.Equal("INV-202601-000001", inv.InvoiceNumber)
	s.Len(inv.LineItems, 1)
	s.Equal(types.LineItemSourceRent, inv.LineItems[0].Source)
	s.Equal(1, inv.LineItems[0].LineNumber)
	s.Equal("12000", inv.Total.String())
	s.Equal(inv.Total.String(), inv.Balance.String())
	s.True(inv.AmountPaid.IsZero())
	s.Equal(1, inv.Version)
}

func (s *InvoiceServiceSuite) TestGenerateOrdersRentChargesAndUtilities() {
	ctx := s.GetContext()
	l := s.seedBillableLease("lease_b")
	l.RecurringCharges = []*lease.RecurringCharge{
		{
			ID:            "rch_parking",
			LeaseID:       l.ID,
			ChargeTypeID:  "ct_parking",
			Description:   "Parking",
			MonthlyAmount: money("150.00"),
			StartDate:     date(2025, time.June, 1),
			Frequency:     types.BillingFrequencyMonthly,
			Active:        true,
			BaseModel:     l.BaseModel,
		},
	}
	s.NoError(s.GetStores().Lease.Update(ctx, l))

	req := s.genReq("lease_b")
	req.UtilityCharges = []dto.UtilityChargeInput{
		{StatementID: "ustmt_1", UtilityType: types.UtilityTypeWater, Amount: money("88.40")},
	}

	resp, err := s.svc.GenerateInvoice(ctx, req)
	s.NoError(err)
	s.Require().Len(resp.Invoice.LineItems, 3)

	s.Equal(types.LineItemSourceRent, resp.Invoice.LineItems[0].Source)
	s.Equal(types.LineItemSourceRecurringCharge, resp.Invoice.LineItems[1].Source)
	s.Equal(types.LineItemSourceUtility, resp.Invoice.LineItems[2].Source)
	s.Equal("ustmt_1", resp.Invoice.LineItems[2].SourceRefID)
	s.Equal("12238.4", resp.Invoice.Total.String())

	for idx, line := range resp.Invoice.LineItems {
		s.Equal(idx+1, line.LineNumber)
	}
}

func (s *InvoiceServiceSuite) TestRegenerateDraftKeepsIdentity() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_c")

	first, err := s.svc.GenerateInvoice(ctx, s.genReq("lease_c"))
	s.NoError(err)

	req := s.genReq("lease_c")
	req.UtilityCharges = []dto.UtilityChargeInput{
		{StatementID: "ustmt_2", UtilityType: types.UtilityTypeGas, Amount: money("61.60")},
	}
	second, err := s.svc.GenerateInvoice(ctx, req)
	s.NoError(err)
	s.True(second.Success)
	s.True(second.WasUpdated)

	s.Equal(first.Invoice.ID, second.Invoice.ID)
	s.Equal(first.Invoice.InvoiceNumber, second.Invoice.InvoiceNumber)
	s.Len(second.Invoice.LineItems, 2)
	s.Equal("12061.6", second.Invoice.Total.String())

	stored, err := s.svc.GetInvoice(ctx, first.Invoice.ID)
	s.NoError(err)
	s.Equal("12061.6", stored.Total.String())
	s.Equal(2, stored.Version)
}

func (s *InvoiceServiceSuite) TestGenerateRefusesNonDraftInvoice() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_d")

	first, err := s.svc.GenerateInvoice(ctx, s.genReq("lease_d"))
	s.NoError(err)
	_, err = s.svc.IssueInvoice(ctx, first.Invoice.ID)
	s.NoError(err)

	resp, err := s.svc.GenerateInvoice(ctx, s.genReq("lease_d"))
	s.NoError(err)
	s.False(resp.Success)
	s.NotEmpty(resp.ErrorMessage)

	// The issued invoice is untouched
	stored, err := s.svc.GetInvoice(ctx, first.Invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusIssued, stored.InvoiceStatus)
	s.Equal("12000", stored.Total.String())
}

func (s *InvoiceServiceSuite) TestGenerateRejectsInactiveLease() {
	ctx := s.GetContext()
	l := s.seedBillableLease("lease_e")
	l.LeaseStatus = types.LeaseStatusEnded
	s.NoError(s.GetStores().Lease.Update(ctx, l))

	_, err := s.svc.GenerateInvoice(ctx, s.genReq("lease_e"))
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestEmptyMethodResolvesFromBillingSetting() {
	ctx := s.GetContext()
	seedLease(ctx, s.GetStores().Lease, "lease_f", "10000.00", date(2026, time.January, 15))
	s.NoError(s.GetStores().Lease.UpsertBillingSetting(ctx, &lease.BillingSetting{
		ID:              "lbs_f",
		LeaseID:         "lease_f",
		BillingDay:      1,
		ProrationMethod: types.ProrationMethodThirtyDayMonth,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}))

	req := s.genReq("lease_f")
	req.Method = ""
	resp, err := s.svc.GenerateInvoice(ctx, req)
	s.NoError(err)
	// 17 days over the 30-day base
	s.Equal("5666.67", resp.Invoice.Total.String())
}

func (s *InvoiceServiceSuite) TestIssueStampsTimeAndFreezesContent() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_g")

	resp, err := s.svc.GenerateInvoice(ctx, s.genReq("lease_g"))
	s.NoError(err)

	issued, err := s.svc.IssueInvoice(ctx, resp.Invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusIssued, issued.InvoiceStatus)
	s.Require().NotNil(issued.IssuedAt)
	s.Equal(s.GetClock().NowUTC(), *issued.IssuedAt)

	// A second issue is an invalid transition
	_, err = s.svc.IssueInvoice(ctx, resp.Invoice.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestIssueEmptyZeroTotalDraftRefused() {
	ctx := s.GetContext()
	// Lease starts after the billing period, so the draft has no lines
	seedLease(ctx, s.GetStores().Lease, "lease_empty", "9000.00", date(2026, time.February, 1))

	resp, err := s.svc.GenerateInvoice(ctx, s.genReq("lease_empty"))
	s.Require().NoError(err)
	s.Empty(resp.Invoice.LineItems)
	s.True(resp.Invoice.Total.IsZero())

	_, err = s.svc.IssueInvoice(ctx, resp.Invoice.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	stored, err := s.svc.GetInvoice(ctx, resp.Invoice.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, stored.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestVoidRequiresReason() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_vr")
	issued := s.issueInvoice("lease_vr")

	_, err := s.svc.VoidInvoice(ctx, dto.VoidInvoiceRequest{InvoiceID: issued.ID, Reason: "   "})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	voided, err := s.svc.VoidInvoice(ctx, dto.VoidInvoiceRequest{InvoiceID: issued.ID, Reason: "  duplicate billing  "})
	s.NoError(err)
	s.Equal("duplicate billing", voided.VoidReason)
}

func (s *InvoiceServiceSuite) TestVoidPartiallyPaidRefused() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_vp")
	issued := s.issueInvoice("lease_vp")

	_, err := s.svc.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: issued.ID,
		Amount:    money("2500.00"),
	})
	s.Require().NoError(err)

	_, err = s.svc.VoidInvoice(ctx, dto.VoidInvoiceRequest{InvoiceID: issued.ID, Reason: "entered twice"})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	stored, err := s.svc.GetInvoice(ctx, issued.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPartiallyPaid, stored.InvoiceStatus)
	s.Nil(stored.VoidedAt)
}

func (s *InvoiceServiceSuite) issueInvoice(leaseID string) *invoice.Invoice {
	ctx := s.GetContext()
	resp, err := s.svc.GenerateInvoice(ctx, s.genReq(leaseID))
	s.Require().NoError(err)
	issued, err := s.svc.IssueInvoice(ctx, resp.Invoice.ID)
	s.Require().NoError(err)
	return issued
}

func (s *InvoiceServiceSuite) TestPartialThenFullPayment() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_h")
	issued := s.issueInvoice("lease_h")

	partial, err := s.svc.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: issued.ID,
		Amount:    money("5000.00"),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPartiallyPaid, partial.InvoiceStatus)
	s.Equal("7000", partial.Balance.String())
	s.Nil(partial.PaidAt)

	paid, err := s.svc.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: issued.ID,
		Amount:    money("7000.00"),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, paid.InvoiceStatus)
	s.True(paid.Balance.IsZero())
	s.NotNil(paid.PaidAt)

	// Paid is terminal
	_, err = s.svc.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: issued.ID,
		Amount:    money("1.00"),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestOverpaymentRefused() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_i")
	issued := s.issueInvoice("lease_i")

	_, err := s.svc.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: issued.ID,
		Amount:    money("12000.01"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	stored, err := s.svc.GetInvoice(ctx, issued.ID)
	s.NoError(err)
	s.True(stored.AmountPaid.IsZero())
	s.Equal(types.InvoiceStatusIssued, stored.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestPaymentOnDraftRefused() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_j")
	resp, err := s.svc.GenerateInvoice(ctx, s.genReq("lease_j"))
	s.NoError(err)

	_, err = s.svc.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: resp.Invoice.ID,
		Amount:    money("100.00"),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestVoidIssuedInvoice() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_k")
	issued := s.issueInvoice("lease_k")

	voided, err := s.svc.VoidInvoice(ctx, dto.VoidInvoiceRequest{
		InvoiceID: issued.ID,
		Reason:    "billed against the wrong unit",
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoided, voided.InvoiceStatus)
	s.NotNil(voided.VoidedAt)
	s.Equal("billed against the wrong unit", voided.VoidReason)

	// Voided is terminal: no payments, no re-issue
	_, err = s.svc.RecordPayment(ctx, dto.RecordPaymentRequest{InvoiceID: issued.ID, Amount: money("1.00")})
	s.Error(err)
	_, err = s.svc.IssueInvoice(ctx, issued.ID)
	s.Error(err)
}

func (s *InvoiceServiceSuite) TestVoidPaidInvoiceRefused() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_l")
	issued := s.issueInvoice("lease_l")

	_, err := s.svc.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: issued.ID,
		Amount:    money("12000.00"),
	})
	s.NoError(err)

	_, err = s.svc.VoidInvoice(ctx, dto.VoidInvoiceRequest{InvoiceID: issued.ID, Reason: "too late"})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestDeleteDraftOnly() {
	ctx := s.GetContext()
	s.seedBillableLease("lease_m")

	resp, err := s.svc.GenerateInvoice(ctx, s.genReq("lease_m"))
	s.NoError(err)
	s.NoError(s.svc.DeleteDraftInvoice(ctx, resp.Invoice.ID))

	_, err = s.svc.GetInvoice(ctx, resp.Invoice.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	s.seedBillableLease("lease_n")
	issued := s.issueInvoice("lease_n")
	err = s.svc.DeleteDraftInvoice(ctx, issued.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
