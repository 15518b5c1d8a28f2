package testutil

import (
	"context"
	"sync"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InMemorySequenceStore implements sequence.Repository. A single mutex
// serializes NextValue, matching the row-lock semantics of the SQL
// implementation.
type InMemorySequenceStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewInMemorySequenceStore() *InMemorySequenceStore {
	return &InMemorySequenceStore{
		counters: make(map[string]int64),
	}
}

func (s *InMemorySequenceStore) NextValue(ctx context.Context, kind types.DocumentKind) (int64, error) {
	if err := kind.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := types.GetOrganizationID(ctx) + ":" + kind.String()
	s.counters[key]++
	return s.counters[key], nil
}
