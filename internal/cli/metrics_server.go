package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/mithrel/docsmith/internal/wire"
)

// startMetrics serves /metrics for the lifetime of a command when
// metrics.addr is set. The returned func stops the server.
func startMetrics(ctx context.Context, app *wire.App) func() {
	addr := app.Cfg.MetricsAddr
	if addr == "" {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := app.Metrics.Serve(ctx, addr); err != nil {
			app.Log.Warn("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	app.Log.Info("serving metrics", zap.String("addr", addr))
	return func() {
		cancel()
		<-done
	}
}
