package testutil

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// MockPostgresClient satisfies postgres.IClient for tests running against
// the in-memory stores. WithTx simply invokes the callback; the in-memory
// stores are not transactional.
type MockPostgresClient struct{}

func NewMockPostgresClient() *MockPostgresClient {
	return &MockPostgresClient{}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (c *MockPostgresClient) TxFromContext(ctx context.Context) *sqlx.Tx {
	return nil
}

func (c *MockPostgresClient) Querier(ctx context.Context) sqlx.ExtContext {
	return nil
}
