package estimator

import "time"

//go:generate mockgen -source clock.go -destination clock_mock.go -package estimator

// Clock is the time source of the drivers. Implementations must be monotonic:
// Since(Now()) never goes backwards across wall-clock adjustments.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// SystemClock reads the process clock. time.Now carries a monotonic reading,
// which time.Since uses.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Since returns the monotonic time elapsed since t.
func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }
