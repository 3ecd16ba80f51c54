package picker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belphemur/date-picker/internal/calendar"
	"github.com/belphemur/date-picker/internal/signals"
)

// fixedNow is a Monday afternoon; tests never depend on the real clock
var fixedNow = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

func newTestPicker(t *testing.T, opts ...Option) *Picker {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
	}, opts...)
	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

// recordChanges collects every dateChange emission of p
func recordChanges(p *Picker) *[]signals.DateChangeData {
	var received []signals.DateChangeData
	p.OnDateChange(func(ctx context.Context, data signals.DateChangeData) {
		received = append(received, data)
	}, "test-recorder")
	return &received
}

func d(year int, month time.Month, day int) calendar.Date {
	return calendar.MustDate(year, month, day)
}

func TestNew_InitialState(t *testing.T) {
	p := newTestPicker(t)

	assert.Equal(t, ModeYearView, p.Mode())
	assert.True(t, p.IsMonthSelectionVisible())
	assert.False(t, p.IsDateSelectionVisible())
	assert.Equal(t, d(2025, time.March, 10), p.Cursor())
	assert.Equal(t, "2025", p.NavigationTitle())

	_, ok := p.Selected()
	assert.False(t, ok)
	_, ok = p.Date()
	assert.False(t, ok)

	rows := p.MonthsRow()
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.Len(t, row, 4)
		for _, cell := range row {
			assert.Equal(t, 2025, cell.Date.Year)
		}
	}
	assert.Equal(t, []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}, p.WeekDays())
	assert.NotEmpty(t, p.Weeks())
}

func TestNew_RejectsInvalidConvention(t *testing.T) {
	_, err := New(WithConvention(calendar.WeekConvention{FirstDay: time.Monday, MinDaysInFirstWeek: 0}))
	require.Error(t, err)
	assert.ErrorIs(t, err, calendar.ErrInvalidConvention)
}

func TestNew_ConventionChangesWeekDays(t *testing.T) {
	p := newTestPicker(t, WithConvention(calendar.ISOConvention))
	assert.Equal(t, []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}, p.WeekDays())
	for _, w := range p.Weeks() {
		assert.Equal(t, time.Monday, w.First().Weekday())
	}
}

func TestNew_LocationAppliesToNow(t *testing.T) {
	// 14:30 UTC is already the next day at UTC+12
	p := newTestPicker(t, WithLocation(time.FixedZone("UTC+12", 12*60*60)))
	assert.Equal(t, d(2025, time.March, 11), p.Cursor())
	assert.Equal(t, d(2025, time.March, 11), p.Today())
}

func TestScenario_SelectAndSaveWithoutHostDate(t *testing.T) {
	p := newTestPicker(t)
	changes := recordChanges(p)

	require.NoError(t, p.OnMonthClicked(time.June))
	assert.Equal(t, ModeMonthView, p.Mode())
	assert.True(t, p.IsDateSelectionVisible())
	assert.Equal(t, "June, 2025", p.NavigationTitle())

	weeks := p.Weeks()
	require.Len(t, weeks, 5) // 1/6-7/6 ... 29/6-5/7
	assert.Equal(t, d(2025, time.June, 1), weeks[0].First())
	assert.Equal(t, d(2025, time.July, 5), weeks[4].Last())

	_, ok := p.Selected()
	assert.False(t, ok, "month click must not select anything")

	require.NoError(t, p.OnDateClicked(d(2025, time.June, 15)))
	assert.True(t, p.IsDateSelected(d(2025, time.June, 15)))
	assert.False(t, p.IsDateSelected(d(2025, time.June, 16)))
	assert.True(t, p.IsMonthSelected(d(2025, time.June, 1)))

	_, ok = p.Date()
	assert.False(t, ok, "host date must not change before save")
	assert.Empty(t, *changes)

	saved := p.Save(context.Background())
	require.NotNil(t, saved)
	expected := time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, expected, *saved)

	require.Len(t, *changes, 1)
	require.NotNil(t, (*changes)[0].Date)
	assert.Equal(t, expected, *(*changes)[0].Date)

	committed, ok := p.Date()
	require.True(t, ok)
	assert.Equal(t, expected, committed)
}

func TestScenario_ResetAfterSave(t *testing.T) {
	p := newTestPicker(t)
	require.NoError(t, p.OnMonthClicked(time.June))
	require.NoError(t, p.OnDateClicked(d(2025, time.June, 15)))
	p.Save(context.Background())

	// wander off before resetting
	require.NoError(t, p.NavigateForward())
	require.NoError(t, p.OnDateClicked(d(2025, time.July, 4)))

	p.Reset()

	assert.Equal(t, ModeYearView, p.Mode())
	assert.Equal(t, d(2025, time.June, 15), p.Cursor())
	assert.True(t, p.IsDateSelected(d(2025, time.June, 15)))
	assert.False(t, p.IsDateSelected(d(2025, time.July, 4)))
	assert.Equal(t, "2025", p.NavigationTitle())
}

func TestReset_WithoutHostDate(t *testing.T) {
	p := newTestPicker(t)
	require.NoError(t, p.OnMonthClicked(time.August))
	require.NoError(t, p.NavigateForward())
	require.NoError(t, p.OnDateClicked(d(2025, time.September, 3)))

	p.Reset()

	assert.Equal(t, ModeYearView, p.Mode())
	_, ok := p.Selected()
	assert.False(t, ok)
	assert.Equal(t, d(2025, time.March, 10), p.Cursor())
	assert.Equal(t, 2025, p.MonthsRow()[0][0].Date.Year)
}

func TestNavigateBackward_FromJanuaryCrossesYear(t *testing.T) {
	p := newTestPicker(t)
	require.NoError(t, p.OnMonthClicked(time.January))

	require.NoError(t, p.NavigateBackward())

	assert.Equal(t, time.December, p.Cursor().Month)
	assert.Equal(t, 2024, p.Cursor().Year)
	assert.Equal(t, "December, 2024", p.NavigationTitle())
	weeks := p.Weeks()
	assert.False(t, weeks[0].First().After(d(2024, time.December, 1)))
	assert.False(t, weeks[len(weeks)-1].Last().Before(d(2024, time.December, 31)))
}

func TestNavigateForward_FromDecemberCrossesYear(t *testing.T) {
	p := newTestPicker(t)
	require.NoError(t, p.OnMonthClicked(time.December))

	require.NoError(t, p.NavigateForward())

	assert.Equal(t, d(2026, time.January, 10), p.Cursor())
	assert.Equal(t, "January, 2026", p.NavigationTitle())
}

func TestNavigate_YearView(t *testing.T) {
	p := newTestPicker(t)

	require.NoError(t, p.NavigateForward())
	assert.Equal(t, "2026", p.NavigationTitle())
	assert.Equal(t, 2026, p.MonthsRow()[2][3].Date.Year)
	assert.Equal(t, time.December, p.MonthsRow()[2][3].Date.Month)

	require.NoError(t, p.NavigateBackward())
	require.NoError(t, p.NavigateBackward())
	assert.Equal(t, "2024", p.NavigationTitle())
	assert.Equal(t, ModeYearView, p.Mode(), "navigation never changes the mode")
}

func TestNavigate_OutOfRange(t *testing.T) {
	p := newTestPicker(t)
	last := time.Date(calendar.MaxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.SetDate(&last))

	err := p.NavigateForward()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, d(calendar.MaxYear, time.December, 31), p.Cursor())

	require.NoError(t, p.OnMonthClicked(time.December))
	assert.ErrorIs(t, p.NavigateForward(), ErrOutOfRange)

	first := time.Date(calendar.MinYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.SetDate(&first))
	assert.ErrorIs(t, p.NavigateBackward(), ErrOutOfRange)
	assert.Equal(t, d(calendar.MinYear, time.January, 1), p.Cursor())
}

func TestNavigationTitleClicked(t *testing.T) {
	p := newTestPicker(t)

	p.NavigationTitleClicked()
	assert.Equal(t, ModeYearView, p.Mode(), "no-op in year view")

	require.NoError(t, p.OnMonthClicked(time.May))
	p.NavigationTitleClicked()
	assert.Equal(t, ModeYearView, p.Mode())
	assert.Equal(t, time.May, p.Cursor().Month, "cursor is kept")
}

func TestOnMonthClicked(t *testing.T) {
	t.Run("invalid month", func(t *testing.T) {
		p := newTestPicker(t)
		for _, month := range []time.Month{0, 13, -1} {
			err := p.OnMonthClicked(month)
			assert.ErrorIs(t, err, ErrInvalidMonth)
		}
		assert.Equal(t, ModeYearView, p.Mode())
	})

	t.Run("day clamps to shorter month", func(t *testing.T) {
		p := newTestPicker(t)
		host := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
		require.NoError(t, p.SetDate(&host))

		require.NoError(t, p.OnMonthClicked(time.February))
		assert.Equal(t, d(2024, time.February, 29), p.Cursor())
		assert.True(t, p.IsDateSelected(d(2024, time.March, 31)), "selection untouched")
	})

	t.Run("leap february grid", func(t *testing.T) {
		p := newTestPicker(t)
		host := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
		require.NoError(t, p.SetDate(&host))
		require.NoError(t, p.OnMonthClicked(time.February))

		var covered []calendar.Date
		for _, w := range p.Weeks() {
			covered = append(covered, w.Dates[:]...)
		}
		assert.Contains(t, covered, d(2024, time.February, 29))
		assert.Equal(t, 0, len(covered)%7)
	})
}

func TestSelectionPredicates_NoSelection(t *testing.T) {
	p := newTestPicker(t)
	for _, day := range []calendar.Date{d(2025, time.March, 10), d(1, time.January, 1), {}} {
		assert.False(t, p.IsMonthSelected(day))
		assert.False(t, p.IsDateSelected(day))
	}
}

func TestIsMonthSelected_ComparesYearAndMonth(t *testing.T) {
	p := newTestPicker(t)
	require.NoError(t, p.OnDateClicked(d(2025, time.June, 15)))

	assert.True(t, p.IsMonthSelected(d(2025, time.June, 30)))
	assert.False(t, p.IsMonthSelected(d(2024, time.June, 15)))
	assert.False(t, p.IsMonthSelected(d(2025, time.July, 15)))
}

func TestOnDateClicked(t *testing.T) {
	t.Run("first click takes time of day from now", func(t *testing.T) {
		p := newTestPicker(t)
		require.NoError(t, p.OnDateClicked(d(2025, time.June, 15)))

		sel, ok := p.Selected()
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC), sel)
	})

	t.Run("later click keeps the selection's time of day", func(t *testing.T) {
		p := newTestPicker(t)
		loc := time.FixedZone("CET", 60*60)
		host := time.Date(2024, time.January, 2, 8, 15, 0, 0, loc)
		require.NoError(t, p.SetDate(&host))

		require.NoError(t, p.OnDateClicked(d(2024, time.January, 20)))

		sel, ok := p.Selected()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, time.January, 20, 8, 15, 0, 0, loc), sel)

		committed, ok := p.Date()
		require.True(t, ok)
		assert.Equal(t, host, committed, "host date is only written by save")
	})

	t.Run("invalid day is rejected", func(t *testing.T) {
		p := newTestPicker(t)
		err := p.OnDateClicked(calendar.Date{Year: 2023, Month: time.February, Day: 29})
		assert.ErrorIs(t, err, calendar.ErrInvalidDate)
		_, ok := p.Selected()
		assert.False(t, ok)
	})

	t.Run("clicking a padding day from the next month", func(t *testing.T) {
		p := newTestPicker(t)
		require.NoError(t, p.OnMonthClicked(time.June))
		weeks := p.Weeks()
		padding := weeks[len(weeks)-1].Last()
		require.Equal(t, time.July, padding.Month)

		require.NoError(t, p.OnDateClicked(padding))
		assert.True(t, p.IsDateSelected(padding))
		assert.Equal(t, time.June, p.Cursor().Month, "the grid is not rebuilt on day click")
	})
}

func TestSave(t *testing.T) {
	t.Run("no selection and no host date emits nil", func(t *testing.T) {
		p := newTestPicker(t)
		changes := recordChanges(p)

		assert.Nil(t, p.Save(context.Background()))
		require.Len(t, *changes, 1)
		assert.Nil(t, (*changes)[0].Date)
	})

	t.Run("keeps host time of day", func(t *testing.T) {
		p := newTestPicker(t)
		changes := recordChanges(p)
		loc := time.FixedZone("PST", -8*60*60)
		host := time.Date(2024, time.January, 2, 8, 15, 42, 7, loc)
		require.NoError(t, p.SetDate(&host))
		require.NoError(t, p.OnDateClicked(d(2024, time.February, 10)))

		saved := p.Save(context.Background())

		expected := time.Date(2024, time.February, 10, 8, 15, 42, 7, loc)
		require.NotNil(t, saved)
		assert.Equal(t, expected, *saved)
		require.Len(t, *changes, 1)
		assert.Equal(t, expected, *(*changes)[0].Date)
	})

	t.Run("emits once per call", func(t *testing.T) {
		p := newTestPicker(t)
		changes := recordChanges(p)
		require.NoError(t, p.OnDateClicked(d(2025, time.June, 15)))

		p.Save(context.Background())
		p.Save(context.Background())
		p.Save(context.Background())

		assert.Len(t, *changes, 3)
	})

	t.Run("host date set without a new click emits it unchanged", func(t *testing.T) {
		p := newTestPicker(t)
		changes := recordChanges(p)
		host := time.Date(2024, time.January, 2, 8, 15, 0, 0, time.UTC)
		require.NoError(t, p.SetDate(&host))

		saved := p.Save(context.Background())
		require.NotNil(t, saved)
		assert.Equal(t, host, *saved)
		assert.Equal(t, host, *(*changes)[0].Date)
	})

	t.Run("returned and emitted values do not alias state", func(t *testing.T) {
		p := newTestPicker(t)
		changes := recordChanges(p)
		require.NoError(t, p.OnDateClicked(d(2025, time.June, 15)))

		saved := p.Save(context.Background())
		*saved = saved.AddDate(5, 0, 0)
		*(*changes)[0].Date = (*changes)[0].Date.AddDate(-5, 0, 0)

		committed, _ := p.Date()
		assert.Equal(t, 2025, committed.Year())
		sel, _ := p.Selected()
		assert.Equal(t, 2025, sel.Year())
	})

	t.Run("removed listener is not called", func(t *testing.T) {
		p := newTestPicker(t)
		changes := recordChanges(p)
		p.RemoveDateChangeListener("test-recorder")

		p.Save(context.Background())
		assert.Empty(t, *changes)
	})
}

func TestSetDate(t *testing.T) {
	t.Run("re-seeds selection and cursor without changing mode", func(t *testing.T) {
		p := newTestPicker(t)
		require.NoError(t, p.OnMonthClicked(time.April))

		host := time.Date(2022, time.November, 5, 10, 0, 0, 0, time.UTC)
		require.NoError(t, p.SetDate(&host))

		assert.Equal(t, ModeMonthView, p.Mode())
		assert.Equal(t, d(2022, time.November, 5), p.Cursor())
		assert.True(t, p.IsDateSelected(d(2022, time.November, 5)))
		assert.Equal(t, "November, 2022", p.NavigationTitle())
		assert.Equal(t, 2022, p.MonthsRow()[0][0].Date.Year)
		assert.True(t, p.Weeks()[0].First().Compare(d(2022, time.November, 1)) <= 0)
	})

	t.Run("host keeps ownership of its value", func(t *testing.T) {
		p := newTestPicker(t)
		host := time.Date(2022, time.November, 5, 10, 0, 0, 0, time.UTC)
		require.NoError(t, p.SetDate(&host))

		host = host.AddDate(1, 0, 0)

		committed, _ := p.Date()
		assert.Equal(t, 2022, committed.Year())
	})

	t.Run("nil clears only the host date", func(t *testing.T) {
		p := newTestPicker(t)
		host := time.Date(2022, time.November, 5, 10, 0, 0, 0, time.UTC)
		require.NoError(t, p.SetDate(&host))

		require.NoError(t, p.SetDate(nil))

		_, ok := p.Date()
		assert.False(t, ok)
		assert.True(t, p.IsDateSelected(d(2022, time.November, 5)))
		assert.Equal(t, d(2022, time.November, 5), p.Cursor())
	})

	t.Run("out of range year is rejected", func(t *testing.T) {
		p := newTestPicker(t)
		bad := time.Date(calendar.MaxYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)

		err := p.SetDate(&bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, calendar.ErrInvalidDate)

		_, ok := p.Date()
		assert.False(t, ok)
		assert.Equal(t, d(2025, time.March, 10), p.Cursor())
	})
}
