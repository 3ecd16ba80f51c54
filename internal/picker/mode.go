package picker

// Mode is the active selection view of a Picker
type Mode string

const (
	// ModeYearView shows the twelve months of the cursor's year
	ModeYearView Mode = "year"
	// ModeMonthView shows the weeks of the cursor's month
	ModeMonthView Mode = "month"
)

// IsValid checks if the mode value is valid
func (m Mode) IsValid() bool {
	return m == ModeYearView || m == ModeMonthView
}

// String returns the string representation of the mode
func (m Mode) String() string {
	return string(m)
}
