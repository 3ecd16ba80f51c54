package picker

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/belphemur/date-picker/internal/calendar"
)

// Option configures a Picker
type Option func(*Picker)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(p *Picker) {
		p.now = now
	}
}

// WithConvention sets the week-start convention used for the month view
func WithConvention(conv calendar.WeekConvention) Option {
	return func(p *Picker) {
		p.conv = conv
	}
}

// WithLocation sets the location "now" is read in
func WithLocation(loc *time.Location) Option {
	return func(p *Picker) {
		p.loc = loc
	}
}

// WithLogger overrides the component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Picker) {
		p.logger = logger
	}
}
