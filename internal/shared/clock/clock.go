package clock

import "time"

// Clock supplies the current time to entity factories. Injecting it keeps
// createdDate/updatedDate deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Test double.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }

// Manual returns whatever its Instant field currently holds, so tests can
// advance or rewind time between calls.
type Manual struct {
	Instant time.Time
}

func (m *Manual) Now() time.Time { return m.Instant }

func (m *Manual) Advance(d time.Duration) { m.Instant = m.Instant.Add(d) }
