package calendar

import (
	"fmt"
	"time"
)

const (
	monthsPerRow = 4
	daysPerWeek  = 7
)

// MonthCell is one month of the year view. Index is 0 for January.
type MonthCell struct {
	Index int
	Date  Date // first day of the month
}

// Month returns the time.Month the cell represents.
func (m MonthCell) Month() time.Month {
	return time.Month(m.Index + 1)
}

// Week is one row of the month view.
type Week struct {
	Number int // week of the year, per the convention used to build it
	Dates  [daysPerWeek]Date
}

// First returns the first day of the week.
func (w Week) First() Date {
	return w.Dates[0]
}

// Last returns the last day of the week.
func (w Week) Last() Date {
	return w.Dates[daysPerWeek-1]
}

// BuildMonthCells returns the twelve months of year in order.
func BuildMonthCells(year int) []MonthCell {
	cells := make([]MonthCell, 12)
	for i := range cells {
		cells[i] = MonthCell{Index: i, Date: Date{Year: year, Month: time.Month(i + 1), Day: 1}}
	}
	return cells
}

// BuildMonthRows groups the months of year into 3 rows of 4 for display.
func BuildMonthRows(year int) [][]MonthCell {
	cells := BuildMonthCells(year)
	rows := make([][]MonthCell, 0, len(cells)/monthsPerRow)
	for i := 0; i < len(cells); i += monthsPerRow {
		rows = append(rows, cells[i:i+monthsPerRow])
	}
	return rows
}

// CalculateCalendarRange determines the first and last day of a view that
// shows full weeks containing the whole of the given month.
func CalculateCalendarRange(year int, month time.Month, conv WeekConvention) (first, last Date) {
	firstOfMonth := Date{Year: year, Month: month, Day: 1}
	return conv.StartOfWeek(firstOfMonth), conv.EndOfWeek(firstOfMonth.LastOfMonth())
}

// BuildWeekGrid returns the weeks covering month, padded with days of the
// adjacent months so every week is complete.
func BuildWeekGrid(year int, month time.Month, conv WeekConvention) ([]Week, error) {
	if err := ValidateMonth(year, month); err != nil {
		return nil, err
	}
	if err := conv.Validate(); err != nil {
		return nil, err
	}

	first, last := CalculateCalendarRange(year, month, conv)
	firstOfMonth := Date{Year: year, Month: month, Day: 1}
	if first.After(firstOfMonth) || last.Before(firstOfMonth.LastOfMonth()) {
		return nil, fmt.Errorf("calendar range %s..%s does not cover %s", first, last, firstOfMonth)
	}
	days := daysBetween(first, last) + 1
	if days%daysPerWeek != 0 {
		return nil, fmt.Errorf("calendar range %s..%s is %d days, not whole weeks", first, last, days)
	}

	weeks := make([]Week, days/daysPerWeek)
	current := first
	for i := range weeks {
		weeks[i].Number = conv.WeekNumber(current)
		for j := range weeks[i].Dates {
			weeks[i].Dates[j] = current
			current = current.AddDays(1)
		}
	}
	return weeks, nil
}

func daysBetween(from, to Date) int {
	return int(to.Time(time.UTC).Sub(from.Time(time.UTC)).Hours() / 24)
}
