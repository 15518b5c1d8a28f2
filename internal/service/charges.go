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

// ChargeCalculationService computes the recurring charge portion of a billing
// period. Inactive charges and non-monthly cadences are skipped; a charge
// active for the whole period bills its full monthly amount.
type ChargeCalculationService interface {
	CalculateCharges(ctx context.Context, req dto.CalculationRequest) (*dto.ChargeCalculationResult, error)
}

type chargeCalculationService struct {
	ServiceParams
}

func NewChargeCalculationService(params ServiceParams) ChargeCalculationService {
	return &chargeCalculationService{ServiceParams: params}
}

func (s *chargeCalculationService) CalculateCharges(ctx context.Context, req dto.CalculationRequest) (*dto.ChargeCalculationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.LeaseRepo.Get(ctx, req.LeaseID)
	if err != nil {
		return nil, err
	}

	period := types.NewBillingPeriod(req.PeriodStart, req.PeriodEnd)
	lines, err := s.chargeLines(l, period, req.Method)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}

	return &dto.ChargeCalculationResult{
		Total:     total,
		LineItems: lines,
	}, nil
}

func (s *chargeCalculationService) chargeLines(l *lease.Lease, period types.BillingPeriod, method types.ProrationMethod) ([]dto.ChargeLineItem, error) {
	charges := make([]*lease.RecurringCharge, len(l.RecurringCharges))
	copy(charges, l.RecurringCharges)
	sort.Slice(charges, func(i, j int) bool {
		return charges[i].StartDate.Before(charges[j].StartDate)
	})

	lines := make([]dto.ChargeLineItem, 0, len(charges))
	for _, charge := range charges {
		if !charge.IsBillable() {
			continue
		}
		if err := charge.Validate(); err != nil {
			return nil, err
		}

		overlap, ok := period.Overlap(charge.StartDate, charge.EndDate)
		if !ok {
			continue
		}

		if overlap.Equal(period) {
			lines = append(lines, dto.ChargeLineItem{
				RecurringChargeID: charge.ID,
				ChargeTypeID:      charge.ChargeTypeID,
				Description:       charge.Description,
				FullMonthlyAmount: charge.MonthlyAmount,
				Amount:            charge.MonthlyAmount.Round(2),
				IsProrated:        false,
			})
			continue
		}

		amount, err := proration.Prorate(proration.ProrationParams{
			FullAmount:  charge.MonthlyAmount,
			UsageStart:  overlap.Start,
			UsageEnd:    overlap.End,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
			Method:      method,
		})
		if err != nil {
			return nil, err
		}

		lines = append(lines, dto.ChargeLineItem{
			RecurringChargeID: charge.ID,
			ChargeTypeID:      charge.ChargeTypeID,
			Description:       charge.Description,
			FullMonthlyAmount: charge.MonthlyAmount,
			Amount:            amount,
			IsProrated:        true,
		})
	}

	return lines, nil
}
