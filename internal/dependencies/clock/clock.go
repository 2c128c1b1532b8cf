package clock

import "time"

// Clock is the time source behind session start and answer timestamps.
// Winner determination compares elapsed times derived from it, so tests
// inject a mock to make those comparisons exact.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
