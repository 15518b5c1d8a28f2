package testutil

import (
	"context"
	"sort"

	"github.com/chethandvg/tenantmanagement/internal/domain/chargetype"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InMemoryChargeTypeStore implements chargetype.Repository
type InMemoryChargeTypeStore struct {
	store *InMemoryStore[*chargetype.ChargeType]
}

func NewInMemoryChargeTypeStore() *InMemoryChargeTypeStore {
	return &InMemoryChargeTypeStore{
		store: NewInMemoryStore[*chargetype.ChargeType](),
	}
}

func (s *InMemoryChargeTypeStore) Create(ctx context.Context, ct *chargetype.ChargeType) error {
	if ct == nil {
		return ierr.NewError("charge type cannot be nil").
			Mark(ierr.ErrValidation)
	}

	duplicates := s.store.List(ctx, func(_ context.Context, existing *chargetype.ChargeType) bool {
		return existing.Status != types.StatusDeleted &&
			existing.Code == ct.Code &&
			existing.OrganizationID == ct.OrganizationID &&
			existing.SystemDefined == ct.SystemDefined
	})
	if len(duplicates) > 0 {
		return ierr.NewError("charge type code already exists").
			WithHintf("Code %s is already in use", ct.Code).
			Mark(ierr.ErrAlreadyExists)
	}

	c := *ct
	return s.store.Create(ctx, ct.ID, &c)
}

func (s *InMemoryChargeTypeStore) Get(ctx context.Context, id string) (*chargetype.ChargeType, error) {
	ct, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ct.Status == types.StatusDeleted {
		return nil, ierr.NewError("charge type not found").
			WithHintf("Charge type with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	out := *ct
	return &out, nil
}

func (s *InMemoryChargeTypeStore) GetByCode(ctx context.Context, code string) (*chargetype.ChargeType, error) {
	orgID := types.GetOrganizationID(ctx)

	// Organization entries shadow system-defined ones with the same code
	matches := s.store.List(ctx, func(_ context.Context, ct *chargetype.ChargeType) bool {
		return ct.Status != types.StatusDeleted &&
			ct.Code == code &&
			(ct.OrganizationID == orgID || ct.SystemDefined)
	})
	if len(matches) == 0 {
		return nil, ierr.NewError("charge type not found").
			WithHintf("No charge type with code %s", code).
			Mark(ierr.ErrNotFound)
	}

	for _, ct := range matches {
		if ct.OrganizationID == orgID && !ct.SystemDefined {
			out := *ct
			return &out, nil
		}
	}
	out := *matches[0]
	return &out, nil
}

func (s *InMemoryChargeTypeStore) List(ctx context.Context) ([]*chargetype.ChargeType, error) {
	orgID := types.GetOrganizationID(ctx)
	items := s.store.List(ctx, func(_ context.Context, ct *chargetype.ChargeType) bool {
		return ct.Status != types.StatusDeleted &&
			ct.Active &&
			(ct.OrganizationID == orgID || ct.SystemDefined)
	})

	result := make([]*chargetype.ChargeType, 0, len(items))
	for _, ct := range items {
		c := *ct
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Code < result[j].Code
	})
	return result, nil
}
