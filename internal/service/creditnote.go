package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chethandvg/tenantmanagement/internal/domain/creditnote"
	"github.com/chethandvg/tenantmanagement/internal/domain/invoice"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// CreditNoteService raises credit notes against issued invoices. Per invoice
// line, the lifetime sum of credits never exceeds the billed amount; the cap
// counts every previously raised note, applied or not.
type CreditNoteService interface {
	CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest) (*creditnote.CreditNote, error)
	GetCreditNote(ctx context.Context, id string) (*creditnote.CreditNote, error)
	ListCreditNotes(ctx context.Context, invoiceID string) ([]*creditnote.CreditNote, error)
	ApplyCreditNote(ctx context.Context, id string) (*creditnote.CreditNote, error)
}

type creditNoteService struct {
	ServiceParams
	numberingSvc NumberingService
}

func NewCreditNoteService(params ServiceParams) CreditNoteService {
	return &creditNoteService{
		ServiceParams: params,
		numberingSvc:  NewNumberingService(params),
	}
}

func (s *creditNoteService) CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest) (*creditnote.CreditNote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv.InvoiceStatus == types.InvoiceStatusDraft || inv.InvoiceStatus == types.InvoiceStatusVoided {
		return nil, ierr.NewError("credit notes can only be raised against issued invoices").
			WithReportableDetails(map[string]any{
				"invoice_id":     inv.ID,
				"invoice_status": inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if err := s.validateCreditableAmounts(ctx, inv, req.LineItems); err != nil {
		return nil, err
	}

	cn := &creditnote.CreditNote{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_NOTE),
		InvoiceID: inv.ID,
		Reason:    req.Reason,
		Memo:      req.Memo,
		Version:   1,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	total := decimal.Zero
	for idx, item := range req.LineItems {
		amount := item.Amount.Round(2).Neg()
		cn.LineItems = append(cn.LineItems, &creditnote.LineItem{
			ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_NOTE_LINE_ITEM),
			CreditNoteID:      cn.ID,
			LineNumber:        idx + 1,
			InvoiceLineItemID: item.InvoiceLineItemID,
			Description:       item.Description,
			Amount:            amount,
			TotalAmount:       amount,
			BaseModel:         cn.BaseModel,
		})
		total = total.Add(amount)
	}
	cn.TotalAmount = total

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		number, err := s.numberingSvc.NextDocumentNumber(txCtx, types.DocumentKindCreditNote)
		if err != nil {
			return err
		}
		cn.CreditNoteNumber = number

		if err := cn.Validate(); err != nil {
			return err
		}
		return s.CreditNoteRepo.CreateWithLineItems(txCtx, cn)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created credit note",
		"credit_note_id", cn.ID,
		"credit_note_number", cn.CreditNoteNumber,
		"invoice_id", inv.ID,
		"total_amount", cn.TotalAmount)
	return cn, nil
}

// validateCreditableAmounts enforces the per-line credit cap across the full
// credit note history of the invoice
func (s *creditNoteService) validateCreditableAmounts(ctx context.Context, inv *invoice.Invoice, items []dto.CreateCreditNoteLineItemRequest) error {
	invoiceLines := make(map[string]*invoice.LineItem, len(inv.LineItems))
	for _, line := range inv.LineItems {
		invoiceLines[line.ID] = line
	}

	credited, err := s.creditedByLine(ctx, inv.ID)
	if err != nil {
		return err
	}

	requested := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		line, ok := invoiceLines[item.InvoiceLineItemID]
		if !ok {
			return ierr.NewError("invoice line item not found").
				WithReportableDetails(map[string]any{
					"invoice_id":           inv.ID,
					"invoice_line_item_id": item.InvoiceLineItemID,
				}).
				Mark(ierr.ErrNotFound)
		}

		requested[line.ID] = requested[line.ID].Add(item.Amount)
		available := line.TotalAmount.Sub(credited[line.ID])
		if requested[line.ID].GreaterThan(available) {
			return ierr.NewError("credit amount exceeds the creditable balance of the line").
				WithReportableDetails(map[string]any{
					"invoice_line_item_id": line.ID,
					"line_total":           line.TotalAmount,
					"already_credited":     credited[line.ID],
					"requested":            requested[line.ID],
				}).
				Mark(ierr.ErrVersionConflict)
		}
	}
	return nil
}

// creditedByLine sums the credit magnitudes already raised per invoice line
func (s *creditNoteService) creditedByLine(ctx context.Context, invoiceID string) (map[string]decimal.Decimal, error) {
	notes, err := s.CreditNoteRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	credited := make(map[string]decimal.Decimal)
	for _, note := range notes {
		for _, line := range note.LineItems {
			credited[line.InvoiceLineItemID] = credited[line.InvoiceLineItemID].Add(line.Amount.Neg())
		}
	}
	return credited, nil
}

func (s *creditNoteService) GetCreditNote(ctx context.Context, id string) (*creditnote.CreditNote, error) {
	return s.CreditNoteRepo.Get(ctx, id)
}

func (s *creditNoteService) ListCreditNotes(ctx context.Context, invoiceID string) ([]*creditnote.CreditNote, error) {
	if invoiceID == "" {
		return nil, ierr.NewError("invoice id is required").
			Mark(ierr.ErrValidation)
	}
	return s.CreditNoteRepo.ListByInvoice(ctx, invoiceID)
}

// ApplyCreditNote stamps the note as applied against the invoice ledger.
// Application is one-way and once only.
func (s *creditNoteService) ApplyCreditNote(ctx context.Context, id string) (*creditnote.CreditNote, error) {
	cn, err := s.CreditNoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cn.IsApplied() {
		return nil, ierr.NewError("credit note has already been applied").
			WithReportableDetails(map[string]any{
				"credit_note_id": cn.ID,
				"applied_at":     *cn.AppliedAt,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Clock.NowUTC()
	cn.AppliedAt = &now

	if err := s.CreditNoteRepo.Update(ctx, cn); err != nil {
		return nil, err
	}

	s.Logger.Infow("applied credit note",
		"credit_note_id", cn.ID,
		"credit_note_number", cn.CreditNoteNumber,
		"invoice_id", cn.InvoiceID)
	return cn, nil
}
