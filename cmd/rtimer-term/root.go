package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rtimer/internal/core/countdown"
	"rtimer/internal/core/model"
	"rtimer/internal/logging"
	"rtimer/internal/storage"
	"rtimer/internal/term"
	"rtimer/internal/ui/preferences"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const appName = "rTimer"

type options struct {
	delay       time.Duration
	interval    time.Duration
	repetitions int
	logLevel    string
	logFormat   string
	noColor     bool
}

func newRootCommand() *cobra.Command {
	return buildRootCommand(&options{})
}

func buildRootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rtimer-term",
		Short: "Run an interval countdown in the terminal.",
		Long: `Run an interval countdown in the terminal. An optional delay is ` +
			`counted down first, then the interval repeats until every ` +
			`repetition is done. Flags that are not given fall back to the ` +
			`settings saved by the rTimer desktop app.`,
		Args:          cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(logging.Config{
				Level:  opts.logLevel,
				Format: opts.logFormat,
			})
			if opts.noColor {
				color.NoColor = true
			}

			stored, err := storage.LoadSettings(appName)
			if err != nil {
				logger.Warn("load settings, using defaults", slog.String("error", err.Error()))
				stored = preferences.DefaultSettings()
			}

			config := resolveConfig(cmd, opts, stored)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, config, logger)
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.delay, "delay", 0, "delay before the first repetition")
	flags.DurationVar(&opts.interval, "interval", 0, "length of one repetition")
	flags.IntVar(&opts.repetitions, "repetitions", 0, "number of repetitions")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

// resolveConfig merges explicitly set flags over the stored settings.
func resolveConfig(cmd *cobra.Command, opts *options, stored preferences.Settings) model.CountdownConfig {
	config := stored.CountdownConfig()
	flags := cmd.Flags()
	if flags.Changed("delay") {
		config.DelaySeconds = int(opts.delay / time.Second)
	}
	if flags.Changed("interval") {
		config.IntervalSeconds = int(opts.interval / time.Second)
	}
	if flags.Changed("repetitions") {
		config.TotalRepetitions = opts.repetitions
	}
	return config
}

func run(ctx context.Context, cmd *cobra.Command, config model.CountdownConfig, logger *slog.Logger) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid countdown: %w", err)
	}

	loop := countdown.NewLoop(8)
	runner := term.NewRunner(cmd.OutOrStdout(), countdown.NewTickerScheduler(loop.Dispatch))
	runner.Engine().SetLogger(logger)

	startErr := make(chan error, 1)
	go loop.Dispatch(func() {
		if err := runner.Start(config); err != nil {
			startErr <- err
			loop.Stop()
		}
	})
	go func() {
		select {
		case <-runner.Done():
		case <-ctx.Done():
		}
		loop.Stop()
	}()

	err := loop.Run(ctx)
	select {
	case err := <-startErr:
		if err != nil {
			return err
		}
	default:
	}
	if ctx.Err() != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "interrupted")
		return nil
	}
	return err
}
