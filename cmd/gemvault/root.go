package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gemvault/internal/config"
	"gemvault/internal/telemetry"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// app is the state shared by every command of one invocation.
type app struct {
	version string
	cfg     *config.Config
	logger  *slog.Logger
	tel     *telemetry.Telemetry

	output string
	trace  bool
}

func newRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "gemvault",
		Short: "Jewelry sizing, weight and catalog tools",
		Long: `gemvault converts ring sizes between regional charts, converts weights
between jewelry units, classifies lengths and previews catalog variants.

Defaults come from GEMVAULT_* environment variables:
  GEMVAULT_LOG_LEVEL         debug, info, warn or error (default info)
  GEMVAULT_LOG_FORMAT        text or json (default text)
  GEMVAULT_DEFAULT_CURRENCY  ISO 4217 code (default USD)
  GEMVAULT_DEFAULT_REGION    us, uk, eu, de or asia (default US)
  GEMVAULT_OUTPUT            text, json or yaml (default text)`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "output format: text, json or yaml")
	root.PersistentFlags().BoolVar(&a.trace, "trace", false, "print recorded spans and counters to stderr")

	root.AddCommand(
		newRingCmd(a),
		newWeightCmd(a),
		newLengthCmd(a),
		newVariantCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	a.cfg = cfg

	if a.output == "" {
		a.output = cfg.Output
	}
	a.output = strings.ToLower(a.output)
	switch a.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid --output %q: want text, json or yaml", a.output)
	}

	a.logger = setupLogger(cmd.ErrOrStderr(), cfg)

	if a.trace {
		tel, err := telemetry.Setup("gemvault", a.version)
		if err != nil {
			return fmt.Errorf("setting up telemetry: %w", err)
		}
		a.tel = tel
	}
	a.logger.Debug("configuration loaded",
		"output", a.output,
		"currency", cfg.DefaultCurrency,
		"region", cfg.DefaultRegion,
		"trace", a.trace,
	)
	return nil
}

func (a *app) teardown(cmd *cobra.Command) error {
	if a.tel == nil {
		return nil
	}
	ctx := context.WithoutCancel(cmd.Context())
	defer func() {
		if err := a.tel.Shutdown(ctx); err != nil {
			a.logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()
	return a.tel.WriteSummary(ctx, cmd.ErrOrStderr())
}

func setupLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// span starts a span for a command. end records err on it.
func (a *app) span(cmd *cobra.Command, name string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	ctx, span := otel.Tracer("gemvault/cli").Start(cmd.Context(), name, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
