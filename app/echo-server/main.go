package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamReco/app/echo-server/metrics"
	"streamReco/app/echo-server/router"
	"streamReco/business/reco"
	"streamReco/internal/middleware"
	"streamReco/internal/repository/csvstore"
	"streamReco/internal/rest"
	"streamReco/pkg/config"
	"streamReco/pkg/logger"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting stream recommendation service", "version", cfg.App.Version)

	metrics.Init()

	// Init repo
	catalogRepo := csvstore.NewCatalogRepository(cfg.Data.RawDir)

	// Init model store + service
	store := reco.NewStore()
	recoService := reco.NewRecoService(catalogRepo, store, reco.Config{
		ExcludeThresholdSeconds: cfg.Reco.ExcludeThresholdSeconds,
		MaxK:                    cfg.Reco.MaxK,
		HistoryMaxK:             cfg.Reco.HistoryMaxK,
	})

	// Blocking initial build. A failed build keeps the process alive but
	// unready, so the failure is visible on /ready instead of a crash loop.
	buildCtx, buildCancel := context.WithTimeout(context.Background(), 5*time.Minute)
	if err := recoService.Reload(buildCtx); err != nil {
		logger.Error("Initial model build failed, serving unready", "error", err.Error())
	}
	buildCancel()

	// Init handlers
	recoHandler := rest.NewRecoHandler(recoService, cfg.Reco.DefaultK, cfg.Reco.HistoryDefaultK)
	healthHandler := rest.NewHealthHandler(recoService)
	adminHandler := rest.NewAdminHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Setup routes
	router.SetupHealthRoutes(e, healthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	router.SetupRecoRoutes(api, recoHandler)
	router.SetupAdminRoutes(api, adminHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err.Error())
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err.Error())
	}

	logger.Info("Server stopped")
}
