package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katiamach/weather-station-dashboard/internal/api"
	"github.com/katiamach/weather-station-dashboard/internal/config"
	"github.com/katiamach/weather-station-dashboard/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to load config: %v", err))
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.RunAPI(ctx, cfg); err != nil {
		logger.Fatal(fmt.Errorf("failed to run weather station dashboard: %v", err))
	}
}
