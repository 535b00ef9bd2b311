package schedule

import "time"

// Clock abstracts the wall clock so past-hour classification is
// testable with a fixed time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
