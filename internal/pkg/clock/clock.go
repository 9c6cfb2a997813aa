// Package clock provides the injectable server clock. Every lifecycle
// operation reads the clock exactly once and reuses that instant for all
// comparisons and persisted values, so tests can supply fixed timestamps.
package clock

import "time"

type Clock interface {
	// Now returns the current instant in UTC.
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns the real wall clock.
func System() Clock {
	return systemClock{}
}

// Fixed is a test clock pinned to an instant. Advance moves it forward.
type Fixed struct {
	Instant time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{Instant: t.UTC()}
}

func (f *Fixed) Now() time.Time {
	return f.Instant
}

func (f *Fixed) Advance(d time.Duration) {
	f.Instant = f.Instant.Add(d)
}
