package clock

import "time"

// Clock provides the current UTC time. Services take a Clock instead of
// calling time.Now so that issued-at, voided-at, paid-at and applied-at
// stamps (and document number year-months) are deterministic in tests.
type Clock interface {
	NowUTC() time.Time
}

type systemClock struct{}

// New returns a Clock backed by the system time
func New() Clock {
	return systemClock{}
}

func (systemClock) NowUTC() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock pinned to a single instant. Advance moves it forward.
type Fixed struct {
	now time.Time
}

// NewFixed returns a Clock pinned to t (normalized to UTC)
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t.UTC()}
}

func (f *Fixed) NowUTC() time.Time {
	return f.now
}

// Advance moves the fixed clock forward by d
func (f *Fixed) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// Set pins the fixed clock to t
func (f *Fixed) Set(t time.Time) {
	f.now = t.UTC()
}
