// Package api wires the upstream client, the selection controller and the HTTP server.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/katiamach/weather-station-dashboard/internal/config"
	"github.com/katiamach/weather-station-dashboard/internal/logger"
	"github.com/katiamach/weather-station-dashboard/internal/service"
	"github.com/katiamach/weather-station-dashboard/internal/transport/rest/handler"
	"github.com/katiamach/weather-station-dashboard/internal/upstream"
)

const shutdownTimeout = 10 * time.Second

// NewHandler builds the dashboard router with CORS and access logging applied.
func NewHandler(cfg config.Config, svc handler.DashboardService, accessLog io.Writer) http.Handler {
	r := mux.NewRouter()
	handler.NewDashboardServer(svc).RegisterRoutes(r)

	options := setupCorsOptions(cfg.Origin)
	return handlers.CombinedLoggingHandler(accessLog, handlers.CORS(options...)(r))
}

// RunAPI runs the dashboard until ctx is cancelled.
func RunAPI(ctx context.Context, cfg config.Config) error {
	client := upstream.New(cfg.APIURL, &http.Client{Timeout: cfg.UpstreamTimeout})
	controller := service.New(client, client)
	defer controller.Close()

	// the directory is loaded once at startup; selections made earlier are retried after it arrives
	go func() {
		if err := controller.LoadStations(ctx); err != nil {
			logger.Error(fmt.Errorf("failed to load stations: %v", err))
		}
	}()

	accessLog := logger.Writer()
	defer accessLog.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(cfg, controller, accessLog),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting weather station dashboard at port %s", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	logger.Info("Shutting down weather station dashboard")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
