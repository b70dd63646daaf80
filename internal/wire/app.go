package wire

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/docsmith/internal/clip"
	"github.com/mithrel/docsmith/internal/config"
	"github.com/mithrel/docsmith/internal/dispatch"
	"github.com/mithrel/docsmith/internal/logging"
	"github.com/mithrel/docsmith/internal/metrics"
	"github.com/mithrel/docsmith/internal/session"
)

// App aggregates the major services for easy injection.
type App struct {
	V         *viper.Viper
	Cfg       config.Settings
	Log       *zap.Logger
	Metrics   *metrics.Metrics
	Client    *dispatch.Client
	Generator *session.Generator
	Clipboard clip.Copier
}

// BuildApp wires dependencies with the provided, already loaded, config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	cfg, err := config.Resolve(v)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	m := metrics.New()

	opts := []dispatch.Option{
		dispatch.WithLogger(logger.Named("dispatch")),
		dispatch.WithMetrics(m),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, dispatch.WithTimeout(cfg.Timeout))
	}
	client := dispatch.New(cfg.BaseURL, opts...)

	return &App{
		V:         v,
		Cfg:       cfg,
		Log:       logger,
		Metrics:   m,
		Client:    client,
		Generator: session.NewGenerator(client, logger.Named("session"), m),
		Clipboard: clip.System{},
	}, nil
}

// Close flushes the logger.
func (a *App) Close() {
	if a == nil || a.Log == nil {
		return
	}
	_ = a.Log.Sync()
}
