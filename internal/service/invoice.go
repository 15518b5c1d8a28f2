package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chethandvg/tenantmanagement/internal/domain/invoice"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InvoiceService generates invoices from lease data and drives the invoice
// lifecycle. Generation is idempotent per (lease, period): a missing invoice
// is created, a draft is regenerated in place, anything else is refused
// without touching the document.
type InvoiceService interface {
	GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error)
	ListInvoices(ctx context.Context, leaseID string) ([]*invoice.Invoice, error)
	DeleteDraftInvoice(ctx context.Context, id string) error
	IssueInvoice(ctx context.Context, id string) (*invoice.Invoice, error)
	VoidInvoice(ctx context.Context, req dto.VoidInvoiceRequest) (*invoice.Invoice, error)
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*invoice.Invoice, error)
}

type invoiceService struct {
	ServiceParams
	rentSvc       RentCalculationService
	chargeSvc     ChargeCalculationService
	chargeTypeSvc ChargeTypeService
	numberingSvc  NumberingService
	leaseSvc      LeaseService
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		rentSvc:       NewRentCalculationService(params),
		chargeSvc:     NewChargeCalculationService(params),
		chargeTypeSvc: NewChargeTypeService(params),
		numberingSvc:  NewNumberingService(params),
		leaseSvc:      NewLeaseService(params),
	}
}

func (s *invoiceService) GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.LeaseRepo.Get(ctx, req.LeaseID)
	if err != nil {
		return nil, err
	}
	if !l.IsActive() {
		return nil, ierr.NewError("invoices can only be generated for active leases").
			WithReportableDetails(map[string]any{
				"lease_id":     l.ID,
				"lease_status": l.LeaseStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if req.Method == "" {
		method, err := s.leaseSvc.EffectiveProrationMethod(ctx, req.LeaseID)
		if err != nil {
			return nil, err
		}
		req.Method = method
	}

	period := types.NewBillingPeriod(req.PeriodStart, req.PeriodEnd)

	existing, err := s.InvoiceRepo.GetByLeaseAndPeriod(ctx, req.LeaseID, period.Start, period.End)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	if existing != nil && existing.IsContentFrozen() {
		s.Logger.Infow("refusing regeneration of non-draft invoice",
			"invoice_id", existing.ID,
			"invoice_status", existing.InvoiceStatus,
			"lease_id", req.LeaseID)
		return &dto.GenerateInvoiceResponse{
			Success: false,
			Invoice: existing,
			ErrorMessage: fmt.Sprintf("invoice %s for this period is %s and cannot be regenerated",
				existing.InvoiceNumber, existing.InvoiceStatus),
		}, nil
	}

	lines, err := s.assembleLineItems(ctx, req, period)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return s.regenerateDraft(ctx, existing, lines)
	}
	return s.createInvoice(ctx, req.LeaseID, period, lines)
}

// assembleLineItems builds the full ordered line collection for one period:
// rent lines first, then recurring charges, then utility pass-throughs.
func (s *invoiceService) assembleLineItems(ctx context.Context, req dto.GenerateInvoiceRequest, period types.BillingPeriod) ([]*invoice.LineItem, error) {
	calcReq := dto.CalculationRequest{
		LeaseID:     req.LeaseID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		Method:      req.Method,
	}

	rentRes, err := s.rentSvc.CalculateRent(ctx, calcReq)
	if err != nil {
		return nil, err
	}
	chargeRes, err := s.chargeSvc.CalculateCharges(ctx, calcReq)
	if err != nil {
		return nil, err
	}

	var rentChargeTypeID string
	if len(rentRes.LineItems) > 0 {
		rentType, err := s.chargeTypeSvc.GetChargeTypeByCode(ctx, types.ChargeTypeCodeRent)
		if err != nil {
			return nil, err
		}
		rentChargeTypeID = rentType.ID
	}

	lines := make([]*invoice.LineItem, 0, len(rentRes.LineItems)+len(chargeRes.LineItems)+len(req.UtilityCharges))
	for _, r := range rentRes.LineItems {
		lines = append(lines, &invoice.LineItem{
			ChargeTypeID: rentChargeTypeID,
			Description: fmt.Sprintf("Rent %s to %s",
				r.PeriodStart.Format(time.DateOnly), r.PeriodEnd.Format(time.DateOnly)),
			Amount:      r.Amount,
			TaxAmount:   decimal.Zero,
			TotalAmount: r.Amount,
			Source:      types.LineItemSourceRent,
			SourceRefID: r.RentTermID,
		})
	}
	for _, c := range chargeRes.LineItems {
		lines = append(lines, &invoice.LineItem{
			ChargeTypeID: c.ChargeTypeID,
			Description:  c.Description,
			Amount:       c.Amount,
			TaxAmount:    decimal.Zero,
			TotalAmount:  c.Amount,
			Source:       types.LineItemSourceRecurringCharge,
			SourceRefID:  c.RecurringChargeID,
		})
	}
	for _, u := range req.UtilityCharges {
		description := u.Description
		if description == "" {
			description = fmt.Sprintf("%s charges", u.UtilityType)
		}
		amount := u.Amount.Round(2)
		lines = append(lines, &invoice.LineItem{
			ChargeTypeID: u.ChargeTypeID,
			Description:  description,
			Amount:       amount,
			TaxAmount:    decimal.Zero,
			TotalAmount:  amount,
			Source:       types.LineItemSourceUtility,
			SourceRefID:  u.StatementID,
		})
	}

	for idx, line := range lines {
		line.LineNumber = idx + 1
	}
	return lines, nil
}

func (s *invoiceService) createInvoice(ctx context.Context, leaseID string, period types.BillingPeriod, lines []*invoice.LineItem) (*dto.GenerateInvoiceResponse, error) {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		LeaseID:       leaseID,
		InvoiceStatus: types.InvoiceStatusDraft,
		PeriodStart:   period.Start,
		PeriodEnd:     period.End,
		AmountPaid:    decimal.Zero,
		LineItems:     lines,
		Version:       1,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	for _, line := range lines {
		line.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM)
		line.InvoiceID = inv.ID
		line.BaseModel = inv.BaseModel
	}
	inv.RecomputeTotals()

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		number, err := s.numberingSvc.NextDocumentNumber(txCtx, types.DocumentKindInvoice)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number

		if err := inv.Validate(); err != nil {
			return err
		}
		return s.InvoiceRepo.CreateWithLineItems(txCtx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"lease_id", leaseID,
		"total", inv.Total)

	return &dto.GenerateInvoiceResponse{
		Success: true,
		Invoice: inv,
	}, nil
}

// regenerateDraft replaces the draft's full line collection, keeping its
// identity and document number stable
func (s *invoiceService) regenerateDraft(ctx context.Context, existing *invoice.Invoice, lines []*invoice.LineItem) (*dto.GenerateInvoiceResponse, error) {
	for _, line := range lines {
		line.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM)
		line.InvoiceID = existing.ID
		line.BaseModel = types.GetDefaultBaseModel(ctx)
	}
	existing.LineItems = lines
	existing.RecomputeTotals()

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.InvoiceRepo.ReplaceLineItems(txCtx, existing)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("regenerated draft invoice",
		"invoice_id", existing.ID,
		"invoice_number", existing.InvoiceNumber,
		"total", existing.Total)

	return &dto.GenerateInvoiceResponse{
		Success:    true,
		WasUpdated: true,
		Invoice:    existing,
	}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	return s.InvoiceRepo.Get(ctx, id)
}

func (s *invoiceService) ListInvoices(ctx context.Context, leaseID string) ([]*invoice.Invoice, error) {
	if leaseID == "" {
		return nil, ierr.NewError("lease id is required").
			Mark(ierr.ErrValidation)
	}
	return s.InvoiceRepo.ListByLease(ctx, leaseID)
}

func (s *invoiceService) DeleteDraftInvoice(ctx context.Context, id string) error {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if inv.InvoiceStatus != types.InvoiceStatusDraft {
		return ierr.NewError("only draft invoices can be deleted").
			WithReportableDetails(map[string]any{
				"invoice_id":     inv.ID,
				"invoice_status": inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return s.InvoiceRepo.Delete(ctx, id)
}

func (s *invoiceService) IssueInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.InvoiceStatus.CanTransitionTo(types.InvoiceStatusIssued) {
		return nil, s.transitionError(inv, types.InvoiceStatusIssued)
	}
	if len(inv.LineItems) == 0 || !inv.Total.IsPositive() {
		return nil, ierr.NewError("invoice must have at least one line and a positive total to be issued").
			WithReportableDetails(map[string]any{
				"invoice_id": inv.ID,
				"line_count": len(inv.LineItems),
				"total":      inv.Total,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Clock.NowUTC()
	inv.InvoiceStatus = types.InvoiceStatusIssued
	inv.IssuedAt = &now

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("issued invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"total", inv.Total)
	return inv, nil
}

func (s *invoiceService) VoidInvoice(ctx context.Context, req dto.VoidInvoiceRequest) (*invoice.Invoice, error) {
	if req.InvoiceID == "" {
		return nil, ierr.NewError("invoice id is required").
			Mark(ierr.ErrValidation)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ierr.NewError("void reason is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.InvoiceStatus.CanTransitionTo(types.InvoiceStatusVoided) {
		return nil, s.transitionError(inv, types.InvoiceStatusVoided)
	}
	if inv.AmountPaid.IsPositive() {
		return nil, ierr.NewError("invoices with recorded payments cannot be voided").
			WithReportableDetails(map[string]any{
				"invoice_id":  inv.ID,
				"amount_paid": inv.AmountPaid,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Clock.NowUTC()
	inv.InvoiceStatus = types.InvoiceStatusVoided
	inv.VoidedAt = &now
	inv.VoidReason = reason

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("voided invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"reason", reason)
	return inv, nil
}

// RecordPayment applies an externally captured payment to the invoice ledger.
// Payments accumulate; a payment that would push the paid amount past the
// total is refused outright.
func (s *invoiceService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*invoice.Invoice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.InvoiceStatus.IsPayable() {
		return nil, ierr.NewError("invoice cannot accept payments in its current status").
			WithReportableDetails(map[string]any{
				"invoice_id":     inv.ID,
				"invoice_status": inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	newPaid := inv.AmountPaid.Add(req.Amount)
	if newPaid.GreaterThan(inv.Total) {
		return nil, ierr.NewError("payment would exceed the invoice total").
			WithReportableDetails(map[string]any{
				"invoice_id":  inv.ID,
				"total":       inv.Total,
				"amount_paid": inv.AmountPaid,
				"payment":     req.Amount,
			}).
			Mark(ierr.ErrValidation)
	}

	inv.AmountPaid = newPaid
	inv.Balance = inv.Total.Sub(newPaid)
	if inv.Balance.IsZero() {
		now := s.Clock.NowUTC()
		inv.InvoiceStatus = types.InvoiceStatusPaid
		inv.PaidAt = &now
	} else {
		inv.InvoiceStatus = types.InvoiceStatusPartiallyPaid
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded payment",
		"invoice_id", inv.ID,
		"payment", req.Amount,
		"amount_paid", inv.AmountPaid,
		"balance", inv.Balance,
		"invoice_status", inv.InvoiceStatus)
	return inv, nil
}

func (s *invoiceService) transitionError(inv *invoice.Invoice, target types.InvoiceStatus) error {
	return ierr.NewError("invalid invoice status transition").
		WithHintf("Cannot move invoice from %s to %s", inv.InvoiceStatus, target).
		WithReportableDetails(map[string]any{
			"invoice_id": inv.ID,
			"from":       inv.InvoiceStatus,
			"to":         target,
		}).
		Mark(ierr.ErrInvalidOperation)
}
