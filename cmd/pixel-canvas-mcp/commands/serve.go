package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-canvas-mcp/internal/canvas"
	"github.com/ironsheep/pixel-canvas-mcp/internal/config"
	"github.com/ironsheep/pixel-canvas-mcp/internal/metrics"
	"github.com/ironsheep/pixel-canvas-mcp/internal/render"
	"github.com/ironsheep/pixel-canvas-mcp/internal/server"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP requests on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
}

// loadConfig reads the config file and applies any flags the user set.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	changed := false
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
		changed = true
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = flags.metricsAddr
		changed = true
	}
	if changed {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// serverOptions translates the loaded config into server options.
func serverOptions(cfg *config.Config) ([]server.Option, error) {
	gridColor, err := canvas.ParseColor(cfg.Canvas.GridColor)
	if err != nil {
		return nil, fmt.Errorf("grid_color: %w", err)
	}

	return []server.Option{
		server.WithCanvasDefaults(cfg.Canvas.Width, cfg.Canvas.Height),
		server.WithMaxSessions(cfg.MaxSessions),
		server.WithRenderDefaults(render.Options{
			CellSize:  cfg.Canvas.CellSize,
			ShowGrid:  cfg.Canvas.ShowGrid,
			GridColor: gridColor,
		}),
	}, nil
}

func runServe(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	opts, err := serverOptions(cfg)
	if err != nil {
		return err
	}
	opts = append(opts, server.WithLogger(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		m := metrics.New()
		opts = append(opts, server.WithMetrics(m))
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("pixel canvas MCP server starting",
		"version", version,
		"commit", commit,
		"canvas_width", cfg.Canvas.Width,
		"canvas_height", cfg.Canvas.Height,
	)

	srv := server.New(opts...)
	if err := srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("input closed, shutting down")
	return nil
}
