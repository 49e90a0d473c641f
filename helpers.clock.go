package main

import (
	"time"
)

var _ Clocker = (*Clock)(nil)

// Clocker abstracts the current time retrieval so the book
// timestamps can be pinned during tests.
type Clocker interface {
	Now() time.Time
}

// Clock is the runtime Clocker. It carries the timezone to
// stamp with, UTC in production and Local in development.
type Clock struct {
	tz *time.Location
}

// NewClock provides a ready to use Clock for the given environment.
func NewClock(isProd bool) *Clock {
	if isProd {
		return &Clock{time.UTC}
	}
	return &Clock{time.Local}
}

// Now provides the current time in the configured timezone.
func (ck *Clock) Now() time.Time {
	return time.Now().In(ck.tz)
}
