package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/belphemur/date-picker/internal/calendar"
	"github.com/belphemur/date-picker/internal/constants"
	"github.com/belphemur/date-picker/internal/logging"
)

// Config holds the application configuration
type Config struct {
	Calendar CalendarConfig `koanf:"calendar"`
	Picker   PickerConfig   `koanf:"picker"`
	Service  ServiceConfig  `koanf:"service"`
}

// CalendarConfig holds the week convention and the location "now" is read in
type CalendarConfig struct {
	WeekStart constants.WeekStart `koanf:"week_start"`
	// MinDaysInFirstWeek of 0 picks 4 for Monday weeks (ISO 8601) and 1 otherwise
	MinDaysInFirstWeek int    `koanf:"min_days_in_first_week"`
	Location           string `koanf:"location"`
}

// PickerConfig holds the date the host hands to the picker at start
type PickerConfig struct {
	InitialDate string `koanf:"initial_date"` // YYYY-MM-DD, empty for none
}

// ServiceConfig holds the process settings
type ServiceConfig struct {
	LogLevel    string `koanf:"log_level"`
	Development bool   `koanf:"development"`
}

func defaults() map[string]any {
	return map[string]any{
		"calendar.week_start":             string(constants.WeekStartSunday),
		"calendar.min_days_in_first_week": 0,
		"calendar.location":               "Local",
		"picker.initial_date":             "",
		"service.log_level":               "info",
		"service.development":             false,
	}
}

// Load reads defaults, then the TOML file at path (skipped when path is
// empty), then DATEPICKER_ environment variables. Nested keys use a double
// underscore: DATEPICKER_CALENDAR__WEEK_START=monday.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default configuration: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load configuration file %s: %w", path, err)
		}
		logger.Debug().Str("config_path", path).Msg("Configuration file loaded")
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: constants.EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, constants.EnvPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "__", "."), value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks if the configuration is valid, reporting every problem at once
func validate(cfg *Config) error {
	var result *multierror.Error

	if !cfg.Calendar.WeekStart.IsValid() {
		result = multierror.Append(result, fmt.Errorf("invalid week start: %s", cfg.Calendar.WeekStart))
	}

	if cfg.Calendar.MinDaysInFirstWeek < 0 || cfg.Calendar.MinDaysInFirstWeek > 7 {
		result = multierror.Append(result, fmt.Errorf("min days in first week must be between 0 and 7, got %d", cfg.Calendar.MinDaysInFirstWeek))
	}

	if _, err := cfg.Calendar.LoadLocation(); err != nil {
		result = multierror.Append(result, err)
	}

	if _, err := cfg.Picker.ParseInitialDate(); err != nil {
		result = multierror.Append(result, err)
	}

	if _, err := logging.ParseLevel(cfg.Service.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid log level: %q", cfg.Service.LogLevel))
	}

	return result.ErrorOrNil()
}

// Convention returns the week convention described by the configuration
func (c CalendarConfig) Convention() calendar.WeekConvention {
	conv := calendar.WeekConvention{
		FirstDay:           c.WeekStart.Weekday(),
		MinDaysInFirstWeek: c.MinDaysInFirstWeek,
	}
	if conv.MinDaysInFirstWeek == 0 {
		conv.MinDaysInFirstWeek = calendar.USConvention.MinDaysInFirstWeek
		if conv.FirstDay == time.Monday {
			conv.MinDaysInFirstWeek = calendar.ISOConvention.MinDaysInFirstWeek
		}
	}
	return conv
}

// LoadLocation resolves the configured location name
func (c CalendarConfig) LoadLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
	}
	return loc, nil
}

// ParseInitialDate returns the configured initial date, or nil when unset
func (p PickerConfig) ParseInitialDate() (*calendar.Date, error) {
	if p.InitialDate == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(p.InitialDate)
	if err != nil {
		return nil, fmt.Errorf("invalid initial_date: %w", err)
	}
	return &d, nil
}
