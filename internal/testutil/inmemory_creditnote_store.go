package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/chethandvg/tenantmanagement/internal/domain/creditnote"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InMemoryCreditNoteStore implements creditnote.Repository
type InMemoryCreditNoteStore struct {
	store *InMemoryStore[*creditnote.CreditNote]
}

func NewInMemoryCreditNoteStore() *InMemoryCreditNoteStore {
	return &InMemoryCreditNoteStore{
		store: NewInMemoryStore[*creditnote.CreditNote](),
	}
}

func (s *InMemoryCreditNoteStore) CreateWithLineItems(ctx context.Context, cn *creditnote.CreditNote) error {
	if cn == nil {
		return ierr.NewError("credit note cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.store.Create(ctx, cn.ID, copyCreditNote(cn))
}

func (s *InMemoryCreditNoteStore) Get(ctx context.Context, id string) (*creditnote.CreditNote, error) {
	cn, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cn.Status == types.StatusDeleted {
		return nil, ierr.NewError("credit note not found").
			WithHintf("Credit note with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCreditNote(cn), nil
}

func (s *InMemoryCreditNoteStore) Update(ctx context.Context, cn *creditnote.CreditNote) error {
	stored, err := s.Get(ctx, cn.ID)
	if err != nil {
		return err
	}
	if stored.Version != cn.Version {
		return ierr.NewError("credit note was modified concurrently").
			WithReportableDetails(map[string]any{
				"credit_note_id": cn.ID,
				"known_version":  cn.Version,
				"stored_version": stored.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	updated := copyCreditNote(cn)
	updated.Version = stored.Version + 1
	updated.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, cn.ID, updated); err != nil {
		return err
	}
	cn.Version = updated.Version
	return nil
}

func (s *InMemoryCreditNoteStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*creditnote.CreditNote, error) {
	matches := s.store.List(ctx, func(_ context.Context, cn *creditnote.CreditNote) bool {
		return cn.Status != types.StatusDeleted && cn.InvoiceID == invoiceID
	})

	result := make([]*creditnote.CreditNote, 0, len(matches))
	for _, cn := range matches {
		result = append(result, copyCreditNote(cn))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreditNoteNumber < result[j].CreditNoteNumber
	})
	return result, nil
}

func copyCreditNote(cn *creditnote.CreditNote) *creditnote.CreditNote {
	out := *cn
	out.LineItems = make([]*creditnote.LineItem, len(cn.LineItems))
	for i, line := range cn.LineItems {
		l := *line
		out.LineItems[i] = &l
	}
	return &out
}
