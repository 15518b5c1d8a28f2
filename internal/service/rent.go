package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	"github.com/chethandvg/tenantmanagement/internal/domain/proration"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// RentCalculationService computes the rent portion of a billing period from
// the lease's rent terms. One line per term that overlaps the period, in
// effective-date order; a term covering the whole period bills the full
// monthly rent without proration.
type RentCalculationService interface {
	CalculateRent(ctx context.Context, req dto.CalculationRequest) (*dto.RentCalculationResult, error)
}

type rentCalculationService struct {
	ServiceParams
}

func NewRentCalculationService(params ServiceParams) RentCalculationService {
	return &rentCalculationService{ServiceParams: params}
}

func (s *rentCalculationService) CalculateRent(ctx context.Context, req dto.CalculationRequest) (*dto.RentCalculationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.LeaseRepo.Get(ctx, req.LeaseID)
	if err != nil {
		return nil, err
	}

	period := types.NewBillingPeriod(req.PeriodStart, req.PeriodEnd)
	lines, err := s.rentLines(l, period, req.Method)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}

	return &dto.RentCalculationResult{
		Total:     total,
		LineItems: lines,
	}, nil
}

func (s *rentCalculationService) rentLines(l *lease.Lease, period types.BillingPeriod, method types.ProrationMethod) ([]dto.RentLineItem, error) {
	terms := make([]*lease.RentTerm, len(l.RentTerms))
	copy(terms, l.RentTerms)
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].EffectiveFrom.Before(terms[j].EffectiveFrom)
	})

	lines := make([]dto.RentLineItem, 0, len(terms))
	for _, term := range terms {
		if err := term.Validate(); err != nil {
			return nil, err
		}

		overlap, ok := period.Overlap(term.EffectiveFrom, term.EffectiveTo)
		if !ok {
			continue
		}

		// A term spanning the entire period bills the full monthly rent as
		// is. Only partial coverage goes through the proration calculator,
		// so a full 31-day period never pays 31/30ths of the rent.
		if overlap.Equal(period) {
			lines = append(lines, dto.RentLineItem{
				RentTermID:      term.ID,
				PeriodStart:     overlap.Start,
				PeriodEnd:       overlap.End,
				FullMonthlyRent: term.MonthlyRent,
				Amount:          term.MonthlyRent.Round(2),
				IsProrated:      false,
			})
			continue
		}

		amount, err := proration.Prorate(proration.ProrationParams{
			FullAmount:  term.MonthlyRent,
			UsageStart:  overlap.Start,
			UsageEnd:    overlap.End,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
			Method:      method,
		})
		if err != nil {
			return nil, err
		}

		lines = append(lines, dto.RentLineItem{
			RentTermID:      term.ID,
			PeriodStart:     overlap.Start,
			PeriodEnd:       overlap.End,
			FullMonthlyRent: term.MonthlyRent,
			Amount:          amount,
			IsProrated:      true,
		})
	}

	return lines, nil
}
