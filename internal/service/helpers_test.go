package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chethandvg/tenantmanagement/internal/domain/chargetype"
	"github.com/chethandvg/tenantmanagement/internal/domain/lease"
	"github.com/chethandvg/tenantmanagement/internal/domain/utility"
	"github.com/chethandvg/tenantmanagement/internal/dto"
	"github.com/chethandvg/tenantmanagement/internal/testutil"
	"github.com/chethandvg/tenantmanagement/internal/types"
)

// newTestParams wires service params against the suite's in-memory stores
func newTestParams(b *testutil.BaseServiceTestSuite) ServiceParams {
	stores := b.GetStores()
	return ServiceParams{
		Logger:               b.GetLogger(),
		Config:               b.GetConfig(),
		DB:                   b.GetDB(),
		Clock:                b.GetClock(),
		Cache:                b.GetCache(),
		LeaseRepo:            stores.Lease,
		ChargeTypeRepo:       stores.ChargeType,
		InvoiceRepo:          stores.Invoice,
		CreditNoteRepo:       stores.CreditNote,
		UtilityRatePlanRepo:  stores.UtilityRatePlan,
		UtilityStatementRepo: stores.UtilityStatement,
		SequenceRepo:         stores.Sequence,
		InvoiceRunRepo:       stores.InvoiceRun,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func dtoDirect(amount string) dto.ComputeUtilityChargeRequest {
	return dto.ComputeUtilityChargeRequest{
		UtilityType: types.UtilityTypeElectricity,
		Mode:        dto.UtilityChargeModeDirectAmount,
		Amount:      money(amount),
	}
}

func dtoFlat(units, rate string) dto.ComputeUtilityChargeRequest {
	return dto.ComputeUtilityChargeRequest{
		UtilityType: types.UtilityTypeElectricity,
		Mode:        dto.UtilityChargeModeMeterFlatRate,
		Units:       money(units),
		RatePerUnit: money(rate),
	}
}

func dtoSlabs(planID, units string) dto.ComputeUtilityChargeRequest {
	return dto.ComputeUtilityChargeRequest{
		UtilityType: types.UtilityTypeElectricity,
		Mode:        dto.UtilityChargeModeMeterSlabs,
		Units:       money(units),
		RatePlanID:  planID,
	}
}

// newTwoTierPlan builds an electricity plan with 0-100 at 2.00 and an open
// tier at 3.00
func newTwoTierPlan(to100 *decimal.Decimal) *utility.RatePlan {
	return &utility.RatePlan{
		UtilityType: types.UtilityTypeElectricity,
		Name:        "Two tier",
		Active:      true,
		Slabs: []*utility.RateSlab{
			{SlabOrder: 1, FromUnits: money("0"), ToUnits: to100, RatePerUnit: money("2.00"), FixedCharge: money("0")},
			{SlabOrder: 2, FromUnits: money("100"), RatePerUnit: money("3.00"), FixedCharge: money("0")},
		},
	}
}

// seedRentChargeType creates the system RENT catalog entry generation
// resolves rent lines against
func seedRentChargeType(ctx context.Context, store *testutil.InMemoryChargeTypeStore) *chargetype.ChargeType {
	ct := &chargetype.ChargeType{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHARGE_TYPE),
		Code:          types.ChargeTypeCodeRent,
		Name:          "Rent",
		SystemDefined: true,
		Active:        true,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if err := store.Create(ctx, ct); err != nil {
		panic(err)
	}
	return ct
}

// seedLease creates an active lease with a single open-ended rent term
func seedLease(ctx context.Context, store *testutil.InMemoryLeaseStore, id string, monthlyRent string, startDate time.Time) *lease.Lease {
	l := &lease.Lease{
		ID:          id,
		UnitID:      types.GenerateUUIDWithPrefix("unit"),
		LeaseStatus: types.LeaseStatusActive,
		StartDate:   startDate,
		Version:     1,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	l.RentTerms = []*lease.RentTerm{
		{
			ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RENT_TERM),
			LeaseID:       id,
			MonthlyRent:   money(monthlyRent),
			EffectiveFrom: startDate,
			BaseModel:     l.BaseModel,
		},
	}
	if err := store.Create(ctx, l); err != nil {
		panic(err)
	}
	return l
}
