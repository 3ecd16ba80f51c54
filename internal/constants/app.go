// Package constants provides shared constants for the date-picker application
package constants

// AppName is the name used in logs and the host's banner
const AppName = "Date Picker"

// EnvPrefix is the prefix for environment variables overriding configuration
const EnvPrefix = "DATEPICKER_"
