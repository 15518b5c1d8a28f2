package service

import (
	"github.com/chethandvg/tenantmanagement/internal/cache"
	"github.com/chethandvg/tenantmanagement/internal/clock"
	"github.com/chethandvg/tenantmanagement/internal/config"
	"github.com/chethandvg/tenantmanagement/internal/domain/chargetype"
	"github.com/chethandvg/tenantmanagement/internal/domain/creditnote"
	"github.com/chethandvg/tenantmanagement/internal/domain/invoice"
	"github.com/chethandvg/tenantmanagement/internal/domain/invoicerun"
	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	"github.com/chethandvg/tenantmanagement/internal/domain/sequence"
	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	"github.com/chethandvg/tenantmanagement/internal/postgres"
)

// ServiceParams holds common dependencies for all services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Clock  clock.Clock
	Cache  cache.Cache

	// Repositories
	LeaseRepo            lease.Repository
	ChargeTypeRepo       chargetype.Repository
	InvoiceRepo          invoice.Repository
	CreditNoteRepo       creditnote.Repository
	UtilityRatePlanRepo  utility.RatePlanRepository
	UtilityStatementRepo utility.StatementRepository
	SequenceRepo         sequence.Repository
	InvoiceRunRepo       invoicerun.Repository
}
