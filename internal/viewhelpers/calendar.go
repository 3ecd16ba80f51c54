package viewhelpers

import (
	"github.com/belphemur/date-picker/internal/calendar"
	"github.com/belphemur/date-picker/internal/picker"
)

// MonthCell represents a single month cell in the year view.
type MonthCell struct {
	Date       calendar.Date
	Name       string // "January"
	Short      string // "Jan"
	IsSelected bool   // Does the selection fall in this month?
	IsCurrent  bool   // Is this the month of today?
}

// CalendarDay represents a single day cell in the month view.
type CalendarDay struct {
	Date           calendar.Date
	DayOfMonth     int
	IsCurrentMonth bool // Is this day within the month being displayed?
	IsSelected     bool
	IsToday        bool
}

// CalendarWeek is one row of the month view.
type CalendarWeek struct {
	Number int
	Days   []CalendarDay
}

// PickerView is a render-ready snapshot of a picker.
type PickerView struct {
	Title     string
	Mode      picker.Mode
	MonthRows [][]MonthCell
	WeekDays  []string
	Weeks     []CalendarWeek
}

// Source is the read-only surface of a picker the view is built from.
type Source interface {
	Mode() picker.Mode
	NavigationTitle() string
	Cursor() calendar.Date
	Today() calendar.Date
	MonthsRow() [][]calendar.MonthCell
	WeekDays() []string
	Weeks() []calendar.Week
	IsMonthSelected(calendar.Date) bool
	IsDateSelected(calendar.Date) bool
}

// Ensure Picker implements Source
var _ Source = (*picker.Picker)(nil)

// BuildPickerView snapshots src for display. Only the grid of the active
// mode is filled in.
func BuildPickerView(src Source) PickerView {
	view := PickerView{
		Title:    src.NavigationTitle(),
		Mode:     src.Mode(),
		WeekDays: append([]string(nil), src.WeekDays()...),
	}

	today := src.Today()
	switch src.Mode() {
	case picker.ModeYearView:
		view.MonthRows = StructureMonthsForTemplate(src, today)
	case picker.ModeMonthView:
		view.Weeks = StructureWeeksForTemplate(src, today)
	}
	return view
}

// StructureMonthsForTemplate decorates the year view's month cells.
func StructureMonthsForTemplate(src Source, today calendar.Date) [][]MonthCell {
	rows := make([][]MonthCell, 0, len(src.MonthsRow()))
	for _, row := range src.MonthsRow() {
		cells := make([]MonthCell, 0, len(row))
		for _, cell := range row {
			name := cell.Month().String()
			cells = append(cells, MonthCell{
				Date:       cell.Date,
				Name:       name,
				Short:      name[:3],
				IsSelected: src.IsMonthSelected(cell.Date),
				IsCurrent:  cell.Date.SameMonth(today),
			})
		}
		rows = append(rows, cells)
	}
	return rows
}

// StructureWeeksForTemplate decorates the month view's week grid.
func StructureWeeksForTemplate(src Source, today calendar.Date) []CalendarWeek {
	cursor := src.Cursor()
	weeks := make([]CalendarWeek, 0, len(src.Weeks()))
	for _, w := range src.Weeks() {
		week := CalendarWeek{Number: w.Number, Days: make([]CalendarDay, 0, len(w.Dates))}
		for _, day := range w.Dates {
			week.Days = append(week.Days, CalendarDay{
				Date:           day,
				DayOfMonth:     day.Day,
				IsCurrentMonth: day.SameMonth(cursor),
				IsSelected:     src.IsDateSelected(day),
				IsToday:        day == today,
			})
		}
		weeks = append(weeks, week)
	}
	return weeks
}
