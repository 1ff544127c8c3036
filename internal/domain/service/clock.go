package service

import "time"

// Clock is the time source for every expiry comparison.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns wall-clock time.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}
