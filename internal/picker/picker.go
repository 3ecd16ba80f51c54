// Package picker implements the date picker's navigation state machine and
// its selection/commit logic. A Picker is not safe for concurrent use.
package picker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/belphemur/date-picker/internal/calendar"
	"github.com/belphemur/date-picker/internal/logging"
	"github.com/belphemur/date-picker/internal/signals"
)

var (
	// ErrInvalidMonth is returned when a clicked month is outside January..December
	ErrInvalidMonth = errors.New("invalid month")
	// ErrOutOfRange is returned when navigation would leave the supported years
	ErrOutOfRange = errors.New("navigation out of range")
)

// Picker holds the state of one date picker
type Picker struct {
	logger zerolog.Logger
	now    func() time.Time
	conv   calendar.WeekConvention
	loc    *time.Location

	mode     Mode
	cursor   calendar.Date
	selected *time.Time // nil until a day is clicked or the host sets a date
	date     *time.Time // host-owned, only written by Save

	monthsRow [][]calendar.MonthCell
	weekDays  []string
	weeks     []calendar.Week

	dateChange signals.DateChange
}

// New creates a Picker in year view with the cursor on today
func New(opts ...Option) (*Picker, error) {
	p := &Picker{
		logger:     logging.GetLogger("picker"),
		now:        time.Now,
		conv:       calendar.USConvention,
		loc:        time.Local,
		mode:       ModeYearView,
		dateChange: signals.NewDateChange(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.conv.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create picker: %w", err)
	}
	if p.loc == nil {
		p.loc = time.Local
	}

	p.cursor = p.today()
	if err := calendar.ValidateYear(p.cursor.Year); err != nil {
		return nil, fmt.Errorf("failed to create picker: clock is outside supported years: %w", err)
	}
	p.weekDays = p.conv.WeekdayNames()
	p.rebuild()

	p.logger.Debug().
		Str("cursor", p.cursor.String()).
		Str("week_start", p.conv.FirstDay.String()).
		Msg("Picker created")
	return p, nil
}

func (p *Picker) nowTime() time.Time {
	return p.now().In(p.loc)
}

func (p *Picker) today() calendar.Date {
	return calendar.DateOf(p.nowTime())
}

// rebuild regenerates the month cells and the week grid from the cursor.
func (p *Picker) rebuild() {
	p.monthsRow = calendar.BuildMonthRows(p.cursor.Year)
	weeks, err := calendar.BuildWeekGrid(p.cursor.Year, p.cursor.Month, p.conv)
	if err != nil {
		// cursor and convention are validated before they are stored
		panic(fmt.Sprintf("picker: week grid for valid cursor %s: %v", p.cursor, err))
	}
	p.weeks = weeks
}

// SetDate is the host's input property. A non-nil date re-seeds the
// selection and the cursor; the mode is left alone. A nil date only clears
// the committed date.
func (p *Picker) SetDate(date *time.Time) error {
	if date == nil {
		p.date = nil
		p.logger.Debug().Msg("Host date cleared")
		return nil
	}

	seed := calendar.DateOf(*date)
	if err := calendar.ValidateYear(seed.Year); err != nil {
		p.logger.Warn().Err(err).Time("date", *date).Msg("Rejected host date")
		return err
	}

	p.date = clone(*date)
	p.selected = clone(*date)
	p.cursor = seed
	p.rebuild()

	p.logger.Debug().Str("cursor", p.cursor.String()).Msg("Host date set")
	return nil
}

// Date returns the committed date owned by the host
func (p *Picker) Date() (time.Time, bool) {
	if p.date == nil {
		return time.Time{}, false
	}
	return *p.date, true
}

// OnDateChange registers a listener for committed dates
func (p *Picker) OnDateChange(handler func(ctx context.Context, data signals.DateChangeData), key ...string) {
	signals.OnDateChange(p.dateChange, handler, key...)
}

// RemoveDateChangeListener removes a listener registered with a key
func (p *Picker) RemoveDateChangeListener(key string) {
	p.dateChange.RemoveListener(key)
}

// Mode returns the active view
func (p *Picker) Mode() Mode {
	return p.mode
}

// IsMonthSelectionVisible reports whether the year view is active
func (p *Picker) IsMonthSelectionVisible() bool {
	return p.mode == ModeYearView
}

// IsDateSelectionVisible reports whether the month view is active
func (p *Picker) IsDateSelectionVisible() bool {
	return p.mode == ModeMonthView
}

// NavigationTitle is "2006" in year view and "January, 2006" in month view
func (p *Picker) NavigationTitle() string {
	switch p.mode {
	case ModeMonthView:
		return fmt.Sprintf("%s, %04d", p.cursor.Month, p.cursor.Year)
	case ModeYearView:
		return fmt.Sprintf("%04d", p.cursor.Year)
	default:
		panic(fmt.Sprintf("picker: unknown mode %q", p.mode))
	}
}

// Cursor returns the date driving the displayed year and month
func (p *Picker) Cursor() calendar.Date {
	return p.cursor
}

// Selected returns the in-progress selection
func (p *Picker) Selected() (time.Time, bool) {
	if p.selected == nil {
		return time.Time{}, false
	}
	return *p.selected, true
}

// Today returns the current date as seen by the picker's clock
func (p *Picker) Today() calendar.Date {
	return p.today()
}

// Convention returns the week-start convention in use
func (p *Picker) Convention() calendar.WeekConvention {
	return p.conv
}

// MonthsRow returns the months of the cursor's year in 3 rows of 4.
// The slices are rebuilt on navigation and must not be modified.
func (p *Picker) MonthsRow() [][]calendar.MonthCell {
	return p.monthsRow
}

// WeekDays returns the weekday abbreviations in display order
func (p *Picker) WeekDays() []string {
	return p.weekDays
}

// Weeks returns the week grid of the cursor's month
func (p *Picker) Weeks() []calendar.Week {
	return p.weeks
}

// NavigationTitleClicked returns from month view to year view
func (p *Picker) NavigationTitleClicked() {
	if p.mode == ModeMonthView {
		p.mode = ModeYearView
		p.logger.Debug().Int("year", p.cursor.Year).Msg("Switched to year view")
	}
}

// NavigateBackward moves to the previous year or month depending on the mode
func (p *Picker) NavigateBackward() error {
	return p.navigate(-1)
}

// NavigateForward moves to the next year or month depending on the mode
func (p *Picker) NavigateForward() error {
	return p.navigate(1)
}

func (p *Picker) navigate(step int) error {
	var next calendar.Date
	switch p.mode {
	case ModeYearView:
		next = p.cursor.AddYears(step)
	case ModeMonthView:
		next = p.cursor.AddMonths(step)
	default:
		panic(fmt.Sprintf("picker: unknown mode %q", p.mode))
	}

	if err := calendar.ValidateYear(next.Year); err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}

	p.cursor = next
	p.rebuild()
	p.logger.Debug().
		Str("mode", p.mode.String()).
		Int("step", step).
		Str("cursor", p.cursor.String()).
		Msg("Navigated")
	return nil
}

// OnMonthClicked moves the cursor to month and opens the month view.
// The selection is not changed.
func (p *Picker) OnMonthClicked(month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, int(month))
	}

	day := min(p.cursor.Day, calendar.DaysInMonth(p.cursor.Year, month))
	p.cursor = calendar.Date{Year: p.cursor.Year, Month: month, Day: day}
	p.mode = ModeMonthView
	p.rebuild()

	p.logger.Debug().Str("month", month.String()).Int("year", p.cursor.Year).Msg("Switched to month view")
	return nil
}

// IsMonthSelected reports whether the selection falls in the month of d
func (p *Picker) IsMonthSelected(d calendar.Date) bool {
	if p.selected == nil {
		return false
	}
	return calendar.DateOf(*p.selected).SameMonth(d)
}

// OnDateClicked sets the selection to day. An existing selection keeps its
// time of day; a first selection takes the time of day from now.
func (p *Picker) OnDateClicked(day calendar.Date) error {
	if err := day.Validate(); err != nil {
		return err
	}

	base := p.nowTime()
	if p.selected != nil {
		base = *p.selected
	}
	p.selected = clone(day.Apply(base))

	p.logger.Debug().Str("selected", day.String()).Msg("Date selected")
	return nil
}

// IsDateSelected reports whether the selection is on day
func (p *Picker) IsDateSelected(day calendar.Date) bool {
	if p.selected == nil {
		return false
	}
	return calendar.DateOf(*p.selected) == day
}

// Save commits the selection onto the host date and emits dateChange once.
// The host date keeps its time of day; if there was none it is created from
// now. Without a selection the current host date, possibly nil, is emitted.
func (p *Picker) Save(ctx context.Context) *time.Time {
	if p.selected != nil {
		base := p.nowTime()
		if p.date != nil {
			base = *p.date
		}
		p.date = clone(calendar.DateOf(*p.selected).Apply(base))
		p.logger.Debug().Time("date", *p.date).Msg("Selection committed")
	} else {
		p.logger.Debug().Msg("Save without selection")
	}

	signals.EmitDateChange(ctx, p.dateChange, p.date)

	if p.date == nil {
		return nil
	}
	return clone(*p.date)
}

// Reset discards the in-progress selection and returns to year view
func (p *Picker) Reset() {
	p.mode = ModeYearView

	if p.date != nil {
		p.selected = clone(*p.date)
		p.cursor = calendar.DateOf(*p.date)
	} else {
		p.selected = nil
		p.cursor = p.today()
	}
	p.rebuild()

	p.logger.Debug().Str("cursor", p.cursor.String()).Bool("has_selection", p.selected != nil).Msg("Picker reset")
}

func clone(t time.Time) *time.Time {
	return &t
}
