package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/datetime"

	"github.com/belphemur/date-picker/internal/calendar"
	"github.com/belphemur/date-picker/internal/constants"
	"github.com/belphemur/date-picker/internal/picker"
	"github.com/belphemur/date-picker/internal/viewhelpers"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  show                      print the current view
  title                     click the navigation title
  back | forward            navigate backward / forward
  month <name|1-12>         click a month in the year view
  day <1-31|YYYY-MM-DD>     click a day in the month view
  save                      commit the selection
  reset                     discard the selection
  set <YYYY-MM-DD|RFC3339|none>  set the host date
  week                      print the week convention
  help                      print this text
  quit                      exit`

// host drives a picker from text commands, standing in for a UI shell
type host struct {
	picker *picker.Picker
	out    io.Writer
	loc    *time.Location
}

func newHost(p *picker.Picker, out io.Writer, loc *time.Location) *host {
	return &host{picker: p, out: out, loc: loc}
}

// execute runs one command line. errQuit ends the session.
func (h *host) execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(h.out, helpText)
		return nil
	case "show":
		h.show()
		return nil
	case "week":
		h.showConvention()
		return nil
	case "title":
		h.picker.NavigationTitleClicked()
	case "back":
		if err := h.picker.NavigateBackward(); err != nil {
			return err
		}
	case "forward":
		if err := h.picker.NavigateForward(); err != nil {
			return err
		}
	case "month":
		month, err := parseMonthArg(args)
		if err != nil {
			return err
		}
		if err := h.picker.OnMonthClicked(month); err != nil {
			return err
		}
	case "day":
		day, err := h.parseDayArg(args)
		if err != nil {
			return err
		}
		if err := h.picker.OnDateClicked(day); err != nil {
			return err
		}
	case "save":
		h.picker.Save(ctx)
		return nil
	case "reset":
		h.picker.Reset()
	case "set":
		date, err := h.parseHostDate(args)
		if err != nil {
			return err
		}
		if err := h.picker.SetDate(date); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}

	h.show()
	return nil
}

func parseMonthArg(args []string) (time.Month, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: month <name|1-12>")
	}
	var m datetime.Month
	if err := m.Parse(args[0]); err != nil {
		return 0, fmt.Errorf("%w: %v", picker.ErrInvalidMonth, err)
	}
	return time.Month(m), nil
}

// parseDayArg accepts a full date or a day number within the cursor's month
func (h *host) parseDayArg(args []string) (calendar.Date, error) {
	if len(args) != 1 {
		return calendar.Date{}, fmt.Errorf("usage: day <1-31|YYYY-MM-DD>")
	}
	if n, err := strconv.Atoi(args[0]); err == nil {
		cursor := h.picker.Cursor()
		return calendar.NewDate(cursor.Year, cursor.Month, n)
	}
	return calendar.ParseDate(args[0])
}

func (h *host) parseHostDate(args []string) (*time.Time, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: set <YYYY-MM-DD|RFC3339|none>")
	}
	if strings.EqualFold(args[0], "none") {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, args[0]); err == nil {
		return &t, nil
	}
	d, err := calendar.ParseDate(args[0])
	if err != nil {
		return nil, err
	}
	t := d.Time(h.loc)
	return &t, nil
}

// show prints the picker as plain text
func (h *host) show() {
	view := viewhelpers.BuildPickerView(h.picker)

	fmt.Fprintf(h.out, "== %s ==\n", view.Title)
	switch view.Mode {
	case picker.ModeYearView:
		for _, row := range view.MonthRows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				cells = append(cells, decorate(cell.Short, cell.IsSelected, cell.IsCurrent))
			}
			fmt.Fprintln(h.out, strings.Join(cells, " "))
		}
	case picker.ModeMonthView:
		fmt.Fprintf(h.out, "   %s\n", strings.Join(padAll(view.WeekDays), " "))
		for _, week := range view.Weeks {
			cells := make([]string, 0, len(week.Days))
			for _, day := range week.Days {
				label := fmt.Sprintf("%2d", day.DayOfMonth)
				if !day.IsCurrentMonth {
					label = " ."
				}
				cells = append(cells, decorate(label, day.IsSelected, day.IsToday))
			}
			fmt.Fprintf(h.out, "%2d %s\n", week.Number, strings.Join(cells, " "))
		}
	}
}

// showConvention prints where weeks start and how week 1 is chosen
func (h *host) showConvention() {
	conv := h.picker.Convention()
	fmt.Fprintf(h.out, "weeks start on %s, week 1 holds at least %d day(s) of the new year\n",
		constants.WeekStartFromWeekday(conv.FirstDay), conv.MinDaysInFirstWeek)
}

// decorate marks the selected cell with brackets and today with asterisks
func decorate(label string, selected, current bool) string {
	switch {
	case selected:
		return "[" + label + "]"
	case current:
		return "*" + label + "*"
	default:
		return " " + label + " "
	}
}

func padAll(names []string) []string {
	padded := make([]string, len(names))
	for i, n := range names {
		padded[i] = " " + n + " "
	}
	return padded
}
