package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chethandvg/tenantmanagement/internal/testutil"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

type NumberingServiceSuite struct {
	testutil.BaseServiceTestSuite
	svc NumberingService
}

func TestNumberingService(t *testing.T) {
	suite.Run(t, new(NumberingServiceSuite))
}

func (s *NumberingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.svc = NewNumberingService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *NumberingServiceSuite) TestDefaultInvoiceNumberFormat() {
	// The suite clock is pinned to January 2026
	number, err := s.svc.NextDocumentNumber(s.GetContext(), types.DocumentKindInvoice)
	s.NoError(err)
	s.Equal("INV-202601-000001", number)
}

func (s *NumberingServiceSuite) TestNumbersAreSequentialPerKind() {
	ctx := s.GetContext()

	first, err := s.svc.NextDocumentNumber(ctx, types.DocumentKindInvoice)
	s.NoError(err)
	second, err := s.svc.NextDocumentNumber(ctx, types.DocumentKindInvoice)
	s.NoError(err)
	cn, err := s.svc.NextDocumentNumber(ctx, types.DocumentKindCreditNote)
	s.NoError(err)

	s.Equal("INV-202601-000001", first)
	s.Equal("INV-202601-000002", second)
	// The credit note sequence is independent of the invoice sequence
	s.Equal("CN-202601-000001", cn)
}

func (s *NumberingServiceSuite) TestCounterDoesNotResetAcrossMonths() {
	ctx := s.GetContext()

	first, err := s.svc.NextDocumentNumber(ctx, types.DocumentKindInvoice)
	s.NoError(err)
	s.Equal("INV-202601-000001", first)

	s.GetClock().Set(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	second, err := s.svc.NextDocumentNumber(ctx, types.DocumentKindInvoice)
	s.NoError(err)
	s.Equal("INV-202602-000002", second)
}

func (s *NumberingServiceSuite) TestConfiguredPrefixIsTrimmed() {
	s.GetConfig().Billing.InvoiceNumberPrefix = "  ACME  "

	number, err := s.svc.NextDocumentNumber(s.GetContext(), types.DocumentKindInvoice)
	s.NoError(err)
	s.Equal("ACME-202601-000001", number)
}

func (s *NumberingServiceSuite) TestWhitespacePrefixFallsBackToDefault() {
	s.GetConfig().Billing.CreditNoteNumberPrefix = "   "

	number, err := s.svc.NextDocumentNumber(s.GetContext(), types.DocumentKindCreditNote)
	s.NoError(err)
	s.Equal("CN-202601-000001", number)
}

func (s *NumberingServiceSuite) TestInvalidKindRejected() {
	_, err := s.svc.NextDocumentNumber(s.GetContext(), types.DocumentKind("Receipt"))
	s.Error(err)
}
