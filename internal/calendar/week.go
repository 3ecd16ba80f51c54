package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConvention is returned by WeekConvention.Validate.
var ErrInvalidConvention = errors.New("invalid week convention")

// WeekConvention describes where weeks start and how weeks of the year are
// numbered. Week 1 is the first week holding at least MinDaysInFirstWeek
// days of the new year.
type WeekConvention struct {
	FirstDay           time.Weekday
	MinDaysInFirstWeek int
}

var (
	// USConvention starts weeks on Sunday; week 1 contains January 1st.
	USConvention = WeekConvention{FirstDay: time.Sunday, MinDaysInFirstWeek: 1}
	// ISOConvention starts weeks on Monday and numbers them per ISO 8601.
	ISOConvention = WeekConvention{FirstDay: time.Monday, MinDaysInFirstWeek: 4}
)

var weekdayAbbreviations = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Validate checks the convention's fields.
func (c WeekConvention) Validate() error {
	if c.FirstDay < time.Sunday || c.FirstDay > time.Saturday {
		return fmt.Errorf("%w: first day %d", ErrInvalidConvention, int(c.FirstDay))
	}
	if c.MinDaysInFirstWeek < 1 || c.MinDaysInFirstWeek > 7 {
		return fmt.Errorf("%w: min days in first week %d outside 1..7", ErrInvalidConvention, c.MinDaysInFirstWeek)
	}
	return nil
}

// offset is how many days d lies after the start of its week.
func (c WeekConvention) offset(d Date) int {
	return (int(d.Weekday()) - int(c.FirstDay) + 7) % 7
}

// StartOfWeek walks back from d to the nearest FirstDay (d itself if it is one).
func (c WeekConvention) StartOfWeek(d Date) Date {
	return d.AddDays(-c.offset(d))
}

// EndOfWeek walks forward from d to the day before the next FirstDay.
func (c WeekConvention) EndOfWeek(d Date) Date {
	return d.AddDays(6 - c.offset(d))
}

// WeekNumber returns the week-of-year number of the week containing d.
func (c WeekConvention) WeekNumber(d Date) int {
	// The week belongs to the year of its anchor day: the last day that
	// still leaves MinDaysInFirstWeek days of the week on or after it.
	anchor := c.StartOfWeek(d).AddDays(7 - c.MinDaysInFirstWeek)
	return (anchor.YearDay()-1)/7 + 1
}

// WeekdayNames returns two-letter weekday abbreviations starting at FirstDay.
func (c WeekConvention) WeekdayNames() []string {
	days := c.Weekdays()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = weekdayAbbreviations[d]
	}
	return names
}

// Weekdays returns the weekdays in display order starting at FirstDay.
func (c WeekConvention) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(c.FirstDay) + i) % 7)
	}
	return days
}
