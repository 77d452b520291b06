package engine

import (
	"errors"
	"strings"
	"time"

	"github.com/tartampluch/go-corrected-age/internal/config"
)

const secondsPerDay = 24 * 60 * 60

// CalendarDate is a date at day granularity, always anchored at UTC midnight.
// Two CalendarDates are equal (==) iff they denote the same calendar day.
type CalendarDate struct {
	t time.Time
}

// NewCalendarDate builds a CalendarDate. Out-of-range values are normalized
// the way time.Date does (e.g. Feb 30 becomes Mar 1 or Mar 2).
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ToCanonicalDay strips time-of-day and timezone from t.
// The calendar fields are read in t's own location, so a late-evening local
// timestamp keeps its local date.
func ToCanonicalDay(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return NewCalendarDate(y, m, d)
}

// ParseCalendarDate accepts YYYY-MM-DD, YYYYMMDD or RFC3339.
// Impossible days such as 2023-02-29 are rejected.
func ParseCalendarDate(value string) (CalendarDate, error) {
	value = strings.TrimSpace(value)
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return ToCanonicalDay(t), nil
		}
	}
	return CalendarDate{}, errors.New(config.ErrDateParse)
}

// Time returns the UTC midnight instant of the day.
func (d CalendarDate) Time() time.Time { return d.t }

// IsZero reports whether d is the zero CalendarDate.
func (d CalendarDate) IsZero() bool { return d.t.IsZero() }

// Year, Month and Day return the calendar fields of the date.
func (d CalendarDate) Year() int         { return d.t.Year() }
func (d CalendarDate) Month() time.Month { return d.t.Month() }
func (d CalendarDate) Day() int          { return d.t.Day() }

func (d CalendarDate) Before(o CalendarDate) bool { return d.t.Before(o.t) }
func (d CalendarDate) After(o CalendarDate) bool  { return d.t.After(o.t) }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d.t.Equal(o.t) }

// AddDays shifts the date by n calendar days (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return CalendarDate{t: d.t.AddDate(0, 0, n)}
}

// AddMonths shifts the date by n calendar months, clamping to the last day of
// the target month: Jan 31 + 1 month is Feb 28 (or Feb 29 in a leap year).
func (d CalendarDate) AddMonths(n int) CalendarDate {
	y, m, day := d.t.Date()
	total := int(m) - 1 + n
	ty := y + floorDiv(total, config.MonthsPerYear)
	tm := time.Month(floorMod(total, config.MonthsPerYear) + 1)
	if last := daysIn(ty, tm); day > last {
		day = last
	}
	return NewCalendarDate(ty, tm, day)
}

// String formats the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return d.t.Format(config.DateFormatFullDash)
}

// MarshalText implements encoding.TextMarshaler.
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *CalendarDate) UnmarshalText(b []byte) error {
	parsed, err := ParseCalendarDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns the calendar-day difference b - a.
// It is negative when b precedes a, and immune to DST because both ends are UTC midnights.
func DaysBetween(a, b CalendarDate) int {
	return int((b.t.Unix() - a.t.Unix()) / secondsPerDay)
}

// daysIn returns the number of days of month m in year y.
func daysIn(y int, m time.Month) int {
	// Day 0 of the next month normalizes to the last day of m.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
