package proration

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chethandvg/tenantmanagement/internal/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProrate_ActualDaysMidMonthStart(t *testing.T) {
	// Lease starting on day 15 of a 31-day month: 17/31 x 10000
	got, err := Prorate(ProrationParams{
		FullAmount:  decimal.NewFromInt(10000),
		UsageStart:  date(2024, 1, 15),
		UsageEnd:    date(2024, 1, 31),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, "5483.87", got.StringFixed(2))
}

func TestProrate_ThirtyDayMonthMidMonthStart(t *testing.T) {
	// Same lease under the fixed 30-day base: 17/30 x 10000
	got, err := Prorate(ProrationParams{
		FullAmount:  decimal.NewFromInt(10000),
		UsageStart:  date(2024, 1, 15),
		UsageEnd:    date(2024, 1, 31),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodThirtyDayMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, "5666.67", got.StringFixed(2))
}

func TestProrate_ThirtyDayMonthFullPeriodExceedsNominal(t *testing.T) {
	// A full 31-day period under the 30-day base: 31/30 x 3100
	got, err := Prorate(ProrationParams{
		FullAmount:  decimal.NewFromInt(3100),
		UsageStart:  date(2024, 1, 1),
		UsageEnd:    date(2024, 1, 31),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodThirtyDayMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, "3203.33", got.StringFixed(2))
}

func TestProrate_EmptyOverlapReturnsZero(t *testing.T) {
	got, err := Prorate(ProrationParams{
		FullAmount:  decimal.NewFromInt(10000),
		UsageStart:  date(2024, 2, 1),
		UsageEnd:    date(2024, 2, 29),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestProrate_FullOverlapActualDaysIsExact(t *testing.T) {
	got, err := Prorate(ProrationParams{
		FullAmount:  decimal.NewFromFloat(10000.55),
		UsageStart:  date(2024, 1, 1),
		UsageEnd:    date(2024, 1, 31),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	require.NoError(t, err)
	assert.Equal(t, "10000.55", got.StringFixed(2))
}

func TestProrate_ComplementSplitsAddUpToFullRent(t *testing.T) {
	// A term split at day 15/16 of January: the two prorated halves must
	// reconstruct the full rent for amounts that divide cleanly.
	rent := decimal.NewFromInt(10000)
	first, err := Prorate(ProrationParams{
		FullAmount:  rent,
		UsageStart:  date(2024, 1, 1),
		UsageEnd:    date(2024, 1, 15),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	require.NoError(t, err)
	second, err := Prorate(ProrationParams{
		FullAmount:  rent,
		UsageStart:  date(2024, 1, 16),
		UsageEnd:    date(2024, 1, 31),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	require.NoError(t, err)

	assert.Equal(t, "4838.71", first.StringFixed(2))
	assert.Equal(t, "5161.29", second.StringFixed(2))
	assert.Equal(t, "10000.00", first.Add(second).StringFixed(2))
}

func TestProrate_RejectsNegativeAmount(t *testing.T) {
	_, err := Prorate(ProrationParams{
		FullAmount:  decimal.NewFromInt(-1),
		UsageStart:  date(2024, 1, 1),
		UsageEnd:    date(2024, 1, 31),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	require.Error(t, err)
}

func TestProrate_RejectsInvertedDates(t *testing.T) {
	_, err := Prorate(ProrationParams{
		FullAmount:  decimal.NewFromInt(100),
		UsageStart:  date(2024, 1, 20),
		UsageEnd:    date(2024, 1, 10),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	require.Error(t, err)

	_, err = Prorate(ProrationParams{
		FullAmount:  decimal.NewFromInt(100),
		UsageStart:  date(2024, 1, 1),
		UsageEnd:    date(2024, 1, 31),
		PeriodStart: date(2024, 1, 31),
		PeriodEnd:   date(2024, 1, 1),
		Method:      types.ProrationMethodActualDaysInMonth,
	})
	require.Error(t, err)
}

func TestProrate_RejectsUnknownMethod(t *testing.T) {
	_, err := Prorate(ProrationParams{
		FullAmount:  decimal.NewFromInt(100),
		UsageStart:  date(2024, 1, 1),
		UsageEnd:    date(2024, 1, 31),
		PeriodStart: date(2024, 1, 1),
		PeriodEnd:   date(2024, 1, 31),
		Method:      types.ProrationMethod("Weekly"),
	})
	require.Error(t, err)
}
