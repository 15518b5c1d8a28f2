package testutil

import (
	"context"

	"github.com/chethandvg/tenantmanagement/internal/domain/invoicerun"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
)

// InMemoryInvoiceRunStore implements invoicerun.Repository
type InMemoryInvoiceRunStore struct {
	store *InMemoryStore[*invoicerun.InvoiceRun]
}

func NewInMemoryInvoiceRunStore() *InMemoryInvoiceRunStore {
	return &InMemoryInvoiceRunStore{
		store: NewInMemoryStore[*invoicerun.InvoiceRun](),
	}
}

func (s *InMemoryInvoiceRunStore) Create(ctx context.Context, run *invoicerun.InvoiceRun) error {
	if run == nil {
		return ierr.NewError("invoice run cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.store.Create(ctx, run.ID, copyRun(run))
}

func (s *InMemoryInvoiceRunStore) Update(ctx context.Context, run *invoicerun.InvoiceRun) error {
	return s.store.Update(ctx, run.ID, copyRun(run))
}

func (s *InMemoryInvoiceRunStore) Get(ctx context.Context, id string) (*invoicerun.InvoiceRun, error) {
	run, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyRun(run), nil
}

func copyRun(run *invoicerun.InvoiceRun) *invoicerun.InvoiceRun {
	out := *run
	out.ErrorMessages = make([]string, len(run.ErrorMessages))
	copy(out.ErrorMessages, run.ErrorMessages)
	return &out
}
