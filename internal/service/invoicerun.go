package service

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/chethandvg/tenantmanagement/internal/domain/invoicerun"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// InvoiceRunService executes bulk invoice generation over every active lease
// of the organization. Leases are processed in a bounded worker pool; one
// failing lease never aborts the run, it is recorded and the run moves on.
type InvoiceRunService interface {
	ExecuteRun(ctx context.Context, req dto.ExecuteInvoiceRunRequest) (*dto.ExecuteInvoiceRunResponse, error)
	GetRun(ctx context.Context, id string) (*invoicerun.InvoiceRun, error)
}

type invoiceRunService struct {
	ServiceParams
	invoiceSvc InvoiceService
}

func NewInvoiceRunService(params ServiceParams) InvoiceRunService {
	return &invoiceRunService{
		ServiceParams: params,
		invoiceSvc:    NewInvoiceService(params),
	}
}

func (s *invoiceRunService) ExecuteRun(ctx context.Context, req dto.ExecuteInvoiceRunRequest) (*dto.ExecuteInvoiceRunResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Method == "" {
		req.Method = s.Config.Billing.DefaultProrationMethod
	}

	period := types.NewBillingPeriod(req.PeriodStart, req.PeriodEnd)

	leases, err := s.LeaseRepo.ListByStatus(ctx, types.LeaseStatusActive)
	if err != nil {
		return nil, err
	}

	run := &invoicerun.InvoiceRun{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_RUN),
		RunReference:    types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE_RUN),
		RunAt:           s.Clock.NowUTC(),
		PeriodStart:     period.Start,
		PeriodEnd:       period.End,
		ProrationMethod: req.Method,
		RunStatus:       types.InvoiceRunStatusRunning,
		TotalLeases:     len(leases),
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	if err := s.InvoiceRunRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	s.Logger.Infow("starting invoice run",
		"run_id", run.ID,
		"run_reference", run.RunReference,
		"total_leases", len(leases),
		"workers", s.runWorkers())

	results := make([]dto.InvoiceRunLeaseResult, len(leases))

	p := pool.New().WithMaxGoroutines(s.runWorkers())
	for i, l := range leases {
		i, l := i, l
		p.Go(func() {
			results[i] = s.processLease(ctx, l.ID, period, req.Method)
		})
	}
	p.Wait()

	for _, r := range results {
		if r.Success {
			run.SuccessCount++
		} else {
			run.FailureCount++
			run.ErrorMessages = append(run.ErrorMessages, r.LeaseID+": "+r.ErrorMessage)
		}
	}
	run.RunStatus = types.InvoiceRunStatusFromCounts(run.TotalLeases, run.FailureCount)

	if err := s.InvoiceRunRepo.Update(ctx, run); err != nil {
		return nil, err
	}

	s.Logger.Infow("finished invoice run",
		"run_id", run.ID,
		"run_status", run.RunStatus,
		"success_count", run.SuccessCount,
		"failure_count", run.FailureCount)

	return &dto.ExecuteInvoiceRunResponse{
		RunID:        run.ID,
		RunReference: run.RunReference,
		RunStatus:    run.RunStatus,
		TotalLeases:  run.TotalLeases,
		SuccessCount: run.SuccessCount,
		FailureCount: run.FailureCount,
		Results:      results,
	}, nil
}

// processLease attempts generation for a single lease and converts every
// outcome, including panics and cancellation, into a per-lease result
func (s *invoiceRunService) processLease(ctx context.Context, leaseID string, period types.BillingPeriod, method types.ProrationMethod) (result dto.InvoiceRunLeaseResult) {
	result = dto.InvoiceRunLeaseResult{LeaseID: leaseID}

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Errorw("panic while generating invoice", "lease_id", leaseID, "panic", r)
			result.Success = false
			result.ErrorMessage = "internal error during generation"
		}
	}()

	if err := ctx.Err(); err != nil {
		result.ErrorMessage = "run cancelled before lease was processed"
		return result
	}

	resp, err := s.invoiceSvc.GenerateInvoice(ctx, dto.GenerateInvoiceRequest{
		LeaseID:     leaseID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		Method:      method,
	})
	if err != nil {
		s.Logger.Warnw("invoice generation failed", "lease_id", leaseID, "error", err)
		result.ErrorMessage = err.Error()
		return result
	}

	result.Success = resp.Success
	result.WasUpdated = resp.WasUpdated
	if resp.Invoice != nil {
		result.InvoiceID = resp.Invoice.ID
	}
	if !resp.Success {
		result.ErrorMessage = resp.ErrorMessage
	}
	return result
}

func (s *invoiceRunService) runWorkers() int {
	if s.Config.Billing.RunWorkers > 0 {
		return s.Config.Billing.RunWorkers
	}
	return 1
}

func (s *invoiceRunService) GetRun(ctx context.Context, id string) (*invoicerun.InvoiceRun, error) {
	return s.InvoiceRunRepo.Get(ctx, id)
}
