package constants

import (
	"fmt"
	"strings"
	"time"
)

// WeekStart names the weekday a calendar week begins on
type WeekStart string

const (
	WeekStartSunday    WeekStart = "sunday"
	WeekStartMonday    WeekStart = "monday"
	WeekStartTuesday   WeekStart = "tuesday"
	WeekStartWednesday WeekStart = "wednesday"
	WeekStartThursday  WeekStart = "thursday"
	WeekStartFriday    WeekStart = "friday"
	WeekStartSaturday  WeekStart = "saturday"
)

var weekStartDays = map[WeekStart]time.Weekday{
	WeekStartSunday:    time.Sunday,
	WeekStartMonday:    time.Monday,
	WeekStartTuesday:   time.Tuesday,
	WeekStartWednesday: time.Wednesday,
	WeekStartThursday:  time.Thursday,
	WeekStartFriday:    time.Friday,
	WeekStartSaturday:  time.Saturday,
}

// IsValid checks if the week start value is valid
func (w WeekStart) IsValid() bool {
	_, ok := weekStartDays[w]
	return ok
}

// String returns the string representation of the week start
func (w WeekStart) String() string {
	return string(w)
}

// Weekday returns the time.Weekday for the week start.
// Invalid values map to Sunday.
func (w WeekStart) Weekday() time.Weekday {
	return weekStartDays[w]
}

// UnmarshalText lets configuration decoders accept "Monday", "monday" or "MONDAY"
func (w *WeekStart) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekStart(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// ParseWeekStart parses a weekday name into a WeekStart.
// Matching is case-insensitive; an error is returned for anything else.
func ParseWeekStart(s string) (WeekStart, error) {
	ws := WeekStart(strings.ToLower(strings.TrimSpace(s)))
	if !ws.IsValid() {
		return "", fmt.Errorf("invalid week start: %s (must be a weekday name)", s)
	}
	return ws, nil
}

// WeekStartFromWeekday is the inverse of WeekStart.Weekday
func WeekStartFromWeekday(d time.Weekday) WeekStart {
	for ws, wd := range weekStartDays {
		if wd == d {
			return ws
		}
	}
	return WeekStartSunday
}

// GetAllWeekStarts returns all valid week start values, Sunday first
func GetAllWeekStarts() []WeekStart {
	return []WeekStart{
		WeekStartSunday,
		WeekStartMonday,
		WeekStartTuesday,
		WeekStartWednesday,
		WeekStartThursday,
		WeekStartFriday,
		WeekStartSaturday,
	}
}
