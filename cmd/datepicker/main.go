package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/belphemur/date-picker/internal/config"
	"github.com/belphemur/date-picker/internal/constants"
	"github.com/belphemur/date-picker/internal/logging"
	"github.com/belphemur/date-picker/internal/picker"
	appSignals "github.com/belphemur/date-picker/internal/signals"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultConfigPath = "configs/datepicker.toml"

// logOutput receives the logs once the configuration enables development mode
var logOutput io.Writer = os.Stderr

func main() {
	// Determine if we're in development mode
	isDev := os.Getenv("ENV") != "production"

	// Initialize logging
	logging.Initialize(isDev)

	// Get a logger for the main component
	logger := logging.GetLogger("main")

	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", date).
		Msg("Starting " + constants.AppName)

	// Create context that's canceled on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received signal, initiating shutdown")
		cancel()
		// stdin reads are not interruptible
		os.Stdin.Close()
	}()

	// Only prompt when a person is typing
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if err := run(ctx, os.Stdin, os.Stdout, interactive); err != nil {
		logger.Fatal().Err(err).Msg("Application run failed")
	}
}

// configPath returns the file to load, or "" to run on defaults when the
// default file is absent
func configPath() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigPath); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return defaultConfigPath
}

func run(ctx context.Context, in io.Reader, out io.Writer, interactive bool) error {
	logger := logging.GetLogger("main")

	path := configPath()
	cfg, err := config.Load(path)
	if err != nil {
		logger.Error().Err(err).Str("config_path", path).Msg("Failed to load configuration")
		return err
	}

	// The configuration can switch on development logging after startup
	if cfg.Service.Development {
		logging.InitializeWithWriter(true, logOutput)
		logger = logging.GetLogger("main")
	}
	logging.SetLogLevel(cfg.Service.LogLevel)
	logger.Info().Str("log_level", cfg.Service.LogLevel).Msg("Log level set")

	// Create the picker
	p, loc, err := newPicker(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Picker initialization failed")
		return err
	}

	// Register the dateChange listener
	p.OnDateChange(func(ctx context.Context, data appSignals.DateChangeData) {
		signalLogger := logging.GetLogger("signal-date-change")
		if data.Date == nil {
			signalLogger.Info().Msg("Date change emitted without a date")
			fmt.Fprintln(out, "dateChange: none")
			return
		}
		signalLogger.Info().Time("date", *data.Date).Msg("Date change emitted")
		fmt.Fprintf(out, "dateChange: %s\n", data.Date.Format(time.RFC3339))
	}, "main-date-change-handler")

	// Start the command session
	h := newHost(p, out, loc)
	h.show()
	return session(ctx, h, in, out, interactive)
}

// newPicker builds the picker from configuration and hands it the initial date
func newPicker(cfg *config.Config) (*picker.Picker, *time.Location, error) {
	loc, err := cfg.Calendar.LoadLocation()
	if err != nil {
		return nil, nil, err
	}

	p, err := picker.New(
		picker.WithConvention(cfg.Calendar.Convention()),
		picker.WithLocation(loc),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create picker: %w", err)
	}

	initial, err := cfg.Picker.ParseInitialDate()
	if err != nil {
		return nil, nil, err
	}
	if initial != nil {
		t := initial.Time(loc)
		if err := p.SetDate(&t); err != nil {
			return nil, nil, fmt.Errorf("failed to set initial date: %w", err)
		}
	}
	return p, loc, nil
}

// session reads commands until EOF, quit or cancellation. Command errors are
// reported and the session continues.
func session(ctx context.Context, h *host, in io.Reader, out io.Writer, interactive bool) error {
	logger := logging.GetLogger("session")
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		err := h.execute(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			logger.Debug().Msg("Quit requested")
			return nil
		}
		if err != nil {
			logger.Warn().Err(err).Str("command", scanner.Text()).Msg("Command failed")
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	if ctx.Err() != nil {
		logger.Info().Msg("Context cancelled, shutdown complete")
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}
