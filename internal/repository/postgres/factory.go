package postgres

import (
	"github.com/chethandvg/tenantmanagement/internal/domain/chargetype"
	"github.com/chethandvg/tenantmanagement/internal/domain/creditnote"
	"github.com/chethandvg/tenantmanagement/internal/domain/invoice"
	"github.com/chethandvg/tenantmanagement/internal/domain/invoicerun"
	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	"github.com/chethandvg/tenantmanagement/internal/domain/sequence"
	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	"github.com/chethandvg/tenantmanagement/internal/logger"
	pgclient "github.com/chethandvg/tenantmanagement/internal/postgres"
)

// Repositories bundles all postgres-backed repository implementations
type Repositories struct {
	Lease            lease.Repository
	ChargeType       chargetype.Repository
	Invoice          invoice.Repository
	CreditNote       creditnote.Repository
	UtilityRatePlan  utility.RatePlanRepository
	UtilityStatement utility.StatementRepository
	Sequence         sequence.Repository
	InvoiceRun       invoicerun.Repository
}

func NewRepositories(client pgclient.IClient, logger *logger.Logger) *Repositories {
	return &Repositories{
		Lease:            NewLeaseRepository(client, logger),
		ChargeType:       NewChargeTypeRepository(client, logger),
		Invoice:          NewInvoiceRepository(client, logger),
		CreditNote:       NewCreditNoteRepository(client, logger),
		UtilityRatePlan:  NewRatePlanRepository(client, logger),
		UtilityStatement: NewUtilityStatementRepository(client, logger),
		Sequence:         NewSequenceRepository(client, logger),
		InvoiceRun:       NewInvoiceRunRepository(client, logger),
	}
}
