package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InMemoryRatePlanStore implements utility.RatePlanRepository
type InMemoryRatePlanStore struct {
	store *InMemoryStore[*utility.RatePlan]
}

func NewInMemoryRatePlanStore() *InMemoryRatePlanStore {
	return &InMemoryRatePlanStore{
		store: NewInMemoryStore[*utility.RatePlan](),
	}
}

func (s *InMemoryRatePlanStore) Create(ctx context.Context, plan *utility.RatePlan) error {
	if plan == nil {
		return ierr.NewError("rate plan cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.store.Create(ctx, plan.ID, copyRatePlan(plan))
}

func (s *InMemoryRatePlanStore) Get(ctx context.Context, id string) (*utility.RatePlan, error) {
	plan, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.Status == types.StatusDeleted {
		return nil, ierr.NewError("rate plan not found").
			WithHintf("Rate plan with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyRatePlan(plan), nil
}

func (s *InMemoryRatePlanStore) ListByUtilityType(ctx context.Context, utilityType types.UtilityType) ([]*utility.RatePlan, error) {
	matches := s.store.List(ctx, func(_ context.Context, plan *utility.RatePlan) bool {
		return plan.Status != types.StatusDeleted &&
			plan.Active &&
			plan.UtilityType == utilityType
	})

	result := make([]*utility.RatePlan, 0, len(matches))
	for _, plan := range matches {
		result = append(result, copyRatePlan(plan))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func copyRatePlan(plan *utility.RatePlan) *utility.RatePlan {
	out := *plan
	out.Slabs = make([]*utility.RateSlab, len(plan.Slabs))
	for i, slab := range plan.Slabs {
		c := *slab
		out.Slabs[i] = &c
	}
	sort.Slice(out.Slabs, func(i, j int) bool {
		return out.Slabs[i].SlabOrder < out.Slabs[j].SlabOrder
	})
	return &out
}

// InMemoryUtilityStatementStore implements utility.StatementRepository
type InMemoryUtilityStatementStore struct {
	store *InMemoryStore[*utility.Statement]
}

func NewInMemoryUtilityStatementStore() *InMemoryUtilityStatementStore {
	return &InMemoryUtilityStatementStore{
		store: NewInMemoryStore[*utility.Statement](),
	}
}

func (s *InMemoryUtilityStatementStore) Create(ctx context.Context, statement *utility.Statement) error {
	if statement == nil {
		return ierr.NewError("statement cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.store.Create(ctx, statement.ID, copyStatement(statement))
}

func (s *InMemoryUtilityStatementStore) Get(ctx context.Context, id string) (*utility.Statement, error) {
	statement, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if statement.Status == types.StatusDeleted {
		return nil, ierr.NewError("statement not found").
			WithHintf("Statement with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyStatement(statement), nil
}

func (s *InMemoryUtilityStatementStore) ListVersions(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) ([]*utility.Statement, error) {
	matches := s.store.List(ctx, func(_ context.Context, statement *utility.Statement) bool {
		return statement.Status != types.StatusDeleted &&
			statement.LeaseID == leaseID &&
			statement.UtilityType == utilityType &&
			statement.PeriodStart.Equal(periodStart) &&
			statement.PeriodEnd.Equal(periodEnd)
	})

	result := make([]*utility.Statement, 0, len(matches))
	for _, statement := range matches {
		result = append(result, copyStatement(statement))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

func (s *InMemoryUtilityStatementStore) GetFinal(ctx context.Context, leaseID string, utilityType types.UtilityType, periodStart, periodEnd time.Time) (*utility.Statement, error) {
	versions, err := s.ListVersions(ctx, leaseID, utilityType, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	for _, statement := range versions {
		if statement.IsFinal {
			return statement, nil
		}
	}
	return nil, ierr.NewError("no finalized statement found").
		WithHintf("No final %s statement for lease %s in the given period", utilityType, leaseID).
		Mark(ierr.ErrNotFound)
}

func copyStatement(statement *utility.Statement) *utility.Statement {
	out := *statement
	out.SlabBreakdown = make([]utility.SlabCharge, len(statement.SlabBreakdown))
	copy(out.SlabBreakdown, statement.SlabBreakdown)
	return &out
}
