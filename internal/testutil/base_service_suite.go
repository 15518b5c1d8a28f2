package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chethandvg/tenantmanagement/internal/cache"
	"github.com/chethandvg/tenantmanagement/internal/clock"
	"github.com/chethandvg/tenantmanagement/internal/config"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	"github.com/chethandvg/tenantmanagement/internal/postgres"
)

// Stores bundles the in-memory repositories backing a service test suite
type Stores struct {
	Lease            *InMemoryLeaseStore
	ChargeType       *InMemoryChargeTypeStore
	Invoice          *InMemoryInvoiceStore
	CreditNote       *InMemoryCreditNoteStore
	UtilityRatePlan  *InMemoryRatePlanStore
	UtilityStatement *InMemoryUtilityStatementStore
	Sequence         *InMemorySequenceStore
	InvoiceRun       *InMemoryInvoiceRunStore
}

// BaseServiceTestSuite provides common setup for service tests: an
// organization context, fresh in-memory stores, a deterministic clock and a
// pass-through transaction client.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores *Stores
	clock  *clock.Fixed
	db     postgres.IClient
	cfg    *config.Configuration
	logger *logger.Logger
	cache  cache.Cache
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = &Stores{
		Lease:            NewInMemoryLeaseStore(),
		ChargeType:       NewInMemoryChargeTypeStore(),
		Invoice:          NewInMemoryInvoiceStore(),
		CreditNote:       NewInMemoryCreditNoteStore(),
		UtilityRatePlan:  NewInMemoryRatePlanStore(),
		UtilityStatement: NewInMemoryUtilityStatementStore(),
		Sequence:         NewInMemorySequenceStore(),
		InvoiceRun:       NewInMemoryInvoiceRunStore(),
	}
	s.clock = clock.NewFixed(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	s.db = NewMockPostgresClient()
	s.cfg = config.GetDefaultConfig()
	s.logger = logger.NewNopLogger()
	s.cache = cache.NewInMemoryCache(true)
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() *Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetClock() *clock.Fixed {
	return s.clock
}

func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}
