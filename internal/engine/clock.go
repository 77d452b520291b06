package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Validator uses it to determine "today" for the future-date rules.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the local calendar day of the clock, anchored at UTC midnight.
// On June 15th in Tokyo it is June 15th, even if it is still June 14th in UTC.
func Today(c Clock) CalendarDate {
	return ToCanonicalDay(c.Now())
}
