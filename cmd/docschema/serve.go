package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/docschema"
	"github.com/felixgeelhaar/docschema/introspect"
	"github.com/felixgeelhaar/docschema/middleware"
	"github.com/felixgeelhaar/docschema/schema"
)

type serveFlags struct {
	config       string
	ws           string
	rate         int
	burst        int
	logLevel     string
	trailingLine bool
}

func newServeCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve [FILE...]",
		Short: "Serve the schemas of Go functions as declaration-only tools",
		Long: `Serve registers every function in the given files as a tool and answers
tools/list over stdio, or over WebSocket when --ws is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			applyServeFlags(cmd, flags, &cfg, args)
			if err := cfg.validate(); err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			srv, err := buildServer(cfg, flags.trailingLine, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := serveOptions(cfg, logger)
			if cfg.WebSocket != "" {
				logger.Info("serving websocket", middleware.F("addr", cfg.WebSocket))
				return docschema.ServeWebSocket(ctx, srv, cfg.WebSocket, opts...)
			}
			return ignoreCanceled(docschema.ServeStdio(ctx, srv, opts...))
		},
	}

	cmd.Flags().StringVar(&flags.config, "config", "", "YAML config file")
	cmd.Flags().StringVar(&flags.ws, "ws", "", "serve WebSocket on this address instead of stdio")
	cmd.Flags().IntVar(&flags.rate, "rate", 0, "requests per second, 0 disables rate limiting")
	cmd.Flags().IntVar(&flags.burst, "burst", 0, "rate limit burst, defaults to --rate")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&flags.trailingLine, "trailing-line", false, "also read a description from a final doc line without newline")
	return cmd
}

// applyServeFlags overrides cfg with flags that were set explicitly.
func applyServeFlags(cmd *cobra.Command, flags *serveFlags, cfg *Config, args []string) {
	cfg.Sources = append(cfg.Sources, args...)
	if cmd.Flags().Changed("ws") {
		cfg.WebSocket = flags.ws
	}
	if cmd.Flags().Changed("rate") {
		cfg.RateLimit.Rate = flags.rate
	}
	if cmd.Flags().Changed("burst") {
		cfg.RateLimit.Burst = flags.burst
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
}

func buildServer(cfg Config, trailingLine bool, logger middleware.Logger) (*docschema.Server, error) {
	var opts []docschema.Option
	if trailingLine {
		opts = append(opts, docschema.WithSchemaOptions(schema.WithUnterminatedLastLine()))
	}
	srv := docschema.NewServer(docschema.ServerInfo{Name: cfg.Name, Version: cfg.Version}, opts...)

	for _, path := range cfg.Sources {
		funcs, err := introspect.ParseFile(path)
		if err != nil {
			return nil, err
		}
		for _, fn := range funcs {
			if err := srv.RegisterFunc(fn); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		logger.Debug("registered source", middleware.F("path", path), middleware.F("tools", len(funcs)))
	}

	logger.Info("tools registered", middleware.F("count", len(srv.Tools())))
	return srv, nil
}

func serveOptions(cfg Config, logger middleware.Logger) []docschema.ServeOption {
	stack := middleware.DefaultStackWithTimeout(logger, cfg.Timeout)
	stack = append(stack, middleware.OTel(middleware.WithOTelServiceName(cfg.Name)))
	if cfg.RateLimit.Rate > 0 {
		stack = append(stack, middleware.RateLimitByMethod(cfg.RateLimit.Rate, cfg.RateLimit.Burst,
			middleware.WithRateLimitLogger(logger)))
	}
	return []docschema.ServeOption{docschema.WithMiddleware(stack...)}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
