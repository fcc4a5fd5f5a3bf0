package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Static is a fixed clock for tests.
type Static struct {
	// T is the instant returned by Now.
	T time.Time
}

// Now returns the fixed instant.
func (s Static) Now() time.Time {
	return s.T
}
