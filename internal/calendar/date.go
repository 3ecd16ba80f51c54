// Package calendar holds the calendar date value and the grid builders
// used by the date picker.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

const (
	// MinYear and MaxYear bound the years a Date may hold so that the
	// year always renders as four digits.
	MinYear = 1
	MaxYear = 9999

	isoLayout = "2006-01-02"
)

// ErrInvalidDate is returned for year/month/day triples that do not name a
// real calendar day. Invalid input is rejected, never clamped.
var ErrInvalidDate = errors.New("invalid date")

// Date is an immutable year/month/day value. Methods return new values and
// never modify the receiver.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for the given triple or ErrInvalidDate.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// MustDate is like NewDate but panics on invalid input. Meant for literals.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar fields of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO "YYYY-MM-DD" date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	d := DateOf(t)
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// DaysInMonth returns the number of days in month for year, accounting for
// leap years.
func DaysInMonth(year int, month time.Month) int {
	return int(datetime.DaysInMonth(year, datetime.Month(month)))
}

// ValidateYear checks that year is within MinYear..MaxYear.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidDate, year, MinYear, MaxYear)
	}
	return nil
}

// ValidateMonth checks year and month without looking at a day.
func ValidateMonth(year int, month time.Month) error {
	if err := ValidateYear(year); err != nil {
		return err
	}
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d outside 1..12", ErrInvalidDate, int(month))
	}
	return nil
}

// Validate reports whether d names a real calendar day.
func (d Date) Validate() error {
	if err := ValidateMonth(d.Year, d.Month); err != nil {
		return err
	}
	if n := DaysInMonth(d.Year, d.Month); d.Day < 1 || d.Day > n {
		return fmt.Errorf("%w: day %d outside 1..%d for %s %d", ErrInvalidDate, d.Day, n, d.Month, d.Year)
	}
	return nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight of d in loc (UTC when loc is nil).
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Apply returns t with its year, month and day replaced by d. The time of
// day and location of t are kept.
func (d Date) Apply(t time.Time) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// AddMonths returns d shifted by n months. The day is clamped to the length
// of the target month, so Mar 31 minus one month is the last day of Feb.
func (d Date) AddMonths(n int) Date {
	total := d.Year*12 + int(d.Month-1) + n
	year, month := total/12, time.Month(total%12+1)
	return Date{Year: year, Month: month, Day: min(d.Day, DaysInMonth(year, month))}
}

// AddYears returns d shifted by n years, clamping Feb 29 to Feb 28.
func (d Date) AddYears(n int) Date {
	return d.AddMonths(12 * n)
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// LastOfMonth returns the last day of d's month.
func (d Date) LastOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// YearDay returns the day of the year, 1..366.
func (d Date) YearDay() int {
	return d.Time(time.UTC).YearDay()
}

// SameMonth reports whether d and o share year and month.
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
