package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/chethandvg/tenantmanagement/internal/domain/invoice"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	store *InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		store: NewInMemoryStore[*invoice.Invoice](),
	}
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").
			Mark(ierr.ErrValidation)
	}

	existing := s.store.List(ctx, func(_ context.Context, other *invoice.Invoice) bool {
		return other.Status != types.StatusDeleted &&
			other.LeaseID == inv.LeaseID &&
			other.PeriodStart.Equal(inv.PeriodStart) &&
			other.PeriodEnd.Equal(inv.PeriodEnd)
	})
	if len(existing) > 0 {
		return ierr.NewError("an invoice already exists for this lease and period").
			WithReportableDetails(map[string]any{
				"lease_id":     inv.LeaseID,
				"period_start": inv.PeriodStart,
				"period_end":   inv.PeriodEnd,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	return s.store.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == types.StatusDeleted {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	stored, err := s.Get(ctx, inv.ID)
	if err != nil {
		return err
	}
	if stored.Version != inv.Version {
		return ierr.NewError("invoice was modified concurrently").
			WithReportableDetails(map[string]any{
				"invoice_id":     inv.ID,
				"known_version":  inv.Version,
				"stored_version": stored.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	updated := copyInvoice(inv)
	updated.Version = stored.Version + 1
	updated.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, inv.ID, updated); err != nil {
		return err
	}
	inv.Version = updated.Version
	return nil
}

func (s *InMemoryInvoiceStore) ReplaceLineItems(ctx context.Context, inv *invoice.Invoice) error {
	stored, err := s.Get(ctx, inv.ID)
	if err != nil {
		return err
	}
	if stored.InvoiceStatus != types.InvoiceStatusDraft {
		return ierr.NewError("line items can only be replaced on draft invoices").
			WithReportableDetails(map[string]any{
				"invoice_id":     inv.ID,
				"invoice_status": stored.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return s.Update(ctx, inv)
}

func (s *InMemoryInvoiceStore) GetByLeaseAndPeriod(ctx context.Context, leaseID string, periodStart, periodEnd time.Time) (*invoice.Invoice, error) {
	matches := s.store.List(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.Status != types.StatusDeleted &&
			inv.LeaseID == leaseID &&
			inv.PeriodStart.Equal(periodStart) &&
			inv.PeriodEnd.Equal(periodEnd)
	})
	if len(matches) == 0 {
		return nil, ierr.NewError("invoice not found").
			WithHintf("No invoice for lease %s in the given period", leaseID).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(matches[0]), nil
}

func (s *InMemoryInvoiceStore) ListByLease(ctx context.Context, leaseID string) ([]*invoice.Invoice, error) {
	matches := s.store.List(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.Status != types.StatusDeleted && inv.LeaseID == leaseID
	})

	result := make([]*invoice.Invoice, 0, len(matches))
	for _, inv := range matches {
		result = append(result, copyInvoice(inv))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PeriodStart.After(result[j].PeriodStart)
	})
	return result, nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	inv.Status = types.StatusDeleted
	inv.UpdatedAt = time.Now().UTC()
	return s.store.Update(ctx, id, inv)
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	out := *inv
	out.LineItems = make([]*invoice.LineItem, len(inv.LineItems))
	for i, line := range inv.LineItems {
		l := *line
		out.LineItems[i] = &l
	}
	return &out
}
