package engine

import "github.com/tartampluch/go-corrected-age/internal/config"

// CalendarBreakdown is a calendar-aware decomposition of the span between two dates.
// Unlike WeeksDays it follows real month and year lengths.
type CalendarBreakdown struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Weeks  int `json:"weeks"`
	Days   int `json:"days"`
}

// IsZero reports whether every field is zero.
func (b CalendarBreakdown) IsZero() bool {
	return b == CalendarBreakdown{}
}

// Breakdown splits the span start -> end into whole years, months, weeks and days.
// A span where end is not after start yields the zero breakdown: a negative
// calendar duration has no well-formed decomposition.
func Breakdown(start, end CalendarDate) CalendarBreakdown {
	if !end.After(start) {
		return CalendarBreakdown{}
	}

	months := wholeMonthsBetween(start, end)
	anchor := start.AddMonths(months)
	rest := DaysBetween(anchor, end)

	return CalendarBreakdown{
		Years:  months / config.MonthsPerYear,
		Months: months % config.MonthsPerYear,
		Weeks:  rest / config.DaysPerWeek,
		Days:   rest % config.DaysPerWeek,
	}
}

// wholeMonthsBetween counts the complete months from start to end (end >= start).
// A month is complete once the clamped anniversary day is reached, so
// Jan 31 -> Feb 28 (non-leap) already counts as one month.
func wholeMonthsBetween(start, end CalendarDate) int {
	months := (end.Year()-start.Year())*config.MonthsPerYear + int(end.Month()) - int(start.Month())
	if start.AddMonths(months).After(end) {
		months--
	}
	return months
}
