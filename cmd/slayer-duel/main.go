package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/api"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/engine"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/logging"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/metrics"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/service"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/version"
)

func main() {
	// Config path may be provided via SLAYER_CONFIG or defaults to
	// ./slayer_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)

	repo := createRepositoryOrExit(cfg.DBPath)
	sessions := createSessionStoreOrExit(cfg.Session)
	defer sessions.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc, err := service.NewBattles(service.Options{
		Skins:       cfg.Skins,
		DefaultSkin: cfg.DefaultSkin,
		Roller:      engine.NewRNG(),
		Sessions:    sessions,
		Records:     repo,
		Metrics:     metrics.NewBattleMetrics(registry),
	})
	if err != nil {
		logging.Fatal("Failed to build battle service", err, nil)
	}

	if cfg.Session.Store == constants.StoreRedis {
		logging.Warn("redis sessions expire by TTL; expired battles are not counted as abandoned", logging.Fields{constants.LogFieldStore: cfg.Session.Store})
	}
	sweeper, err := startIdleSweeper(svc, cfg.Session.SweepSchedule, cfg.Session.IdleTTL)
	if err != nil {
		logging.Fatal("Invalid session sweep schedule", err, logging.Fields{"schedule": cfg.Session.SweepSchedule})
	}
	defer sweeper.Stop()

	router := gin.Default()
	router.Use(metrics.NewHTTPMetrics(registry).Middleware())
	api.RegisterRoutes(router, api.NewBattleHandler(svc))
	router.GET(constants.RouteMetrics, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router}
	go func() {
		logging.Info("Server started", logging.Fields{
			constants.LogFieldAddr:  cfg.ServerAddress,
			constants.LogFieldStore: cfg.Session.Store,
			"version":               version.Version,
			"skins":                 len(cfg.Skins),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down server", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", err, nil)
	}
}
