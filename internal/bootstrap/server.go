package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/travelagency/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultShutdownTimeout = 5 * time.Second

// Run serves handler on cfg.Address and blocks until ctx is cancelled or the
// server fails. On cancellation in-flight requests get the configured
// shutdown timeout to finish.
func Run(ctx context.Context, cfg config.HTTPConfig, handler http.Handler, logger *slog.Logger) error {
	lis, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("listen http %s: %w", cfg.Address, err)
	}
	return serve(ctx, lis, newServer(handler), shutdownTimeout(cfg), logger)
}

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           otelhttp.NewHandler(handler, "travelagency-http"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func serve(ctx context.Context, lis net.Listener, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()
	logger.Info("http server listening", slog.String("address", lis.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func shutdownTimeout(cfg config.HTTPConfig) time.Duration {
	if cfg.ShutdownTimeoutSec <= 0 {
		return defaultShutdownTimeout
	}
	return time.Duration(cfg.ShutdownTimeoutSec) * time.Second
}
