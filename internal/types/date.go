package types

import (
	"time"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
)

// BillingPeriod is an inclusive date interval [Start, End] for which one
// invoice is generated per lease. All dates are treated as whole days in UTC;
// time-of-day components are normalized away before any arithmetic.
type BillingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewBillingPeriod normalizes both bounds to UTC midnight
func NewBillingPeriod(start, end time.Time) BillingPeriod {
	return BillingPeriod{
		Start: NormalizeDate(start),
		End:   NormalizeDate(end),
	}
}

func (p BillingPeriod) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return ierr.NewError("billing period bounds are required").
			WithHint("Please provide both period start and end dates").
			Mark(ierr.ErrValidation)
	}
	if p.End.Before(p.Start) {
		return ierr.NewError("invalid billing period").
			WithHintf("Period end %s is before period start %s",
				p.End.Format(time.DateOnly), p.Start.Format(time.DateOnly)).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Days returns the inclusive day count of the period
func (p BillingPeriod) Days() int {
	return DaysInclusive(p.Start, p.End)
}

// Equal reports whether both periods cover the same dates
func (p BillingPeriod) Equal(other BillingPeriod) bool {
	return p.Start.Equal(other.Start) && p.End.Equal(other.End)
}

// Overlap computes the intersection of the period with [start, end].
// The second return value is false when the intersection is empty.
func (p BillingPeriod) Overlap(start time.Time, end *time.Time) (BillingPeriod, bool) {
	s := NormalizeDate(start)
	if s.Before(p.Start) {
		s = p.Start
	}

	e := p.End
	if end != nil {
		n := NormalizeDate(*end)
		if n.Before(e) {
			e = n
		}
	}

	if e.Before(s) {
		return BillingPeriod{}, false
	}
	return BillingPeriod{Start: s, End: e}, true
}

// NormalizeDate truncates a timestamp to UTC midnight
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInclusive counts whole days between two dates, both ends included.
// Dates are normalized to UTC midnight first, so the result is stable
// regardless of time-of-day components.
func DaysInclusive(start, end time.Time) int {
	s := NormalizeDate(start)
	e := NormalizeDate(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
