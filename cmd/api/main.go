package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pilgrimage/internal/app"
	"pilgrimage/internal/config"
	"pilgrimage/internal/handler"
	"pilgrimage/internal/metrics"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.Verify(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger := cfg.Logging.NewLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	h := handler.NewHandler(app.NewServices(db, logger), cfg.HTTP.UserHeader, logger)
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	h.Register(router)
	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	srv := &http.Server{Addr: ":" + cfg.HTTP.Port, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()
	logger.Info("api server started", "addr", srv.Addr)

	<-ctx.Done()
	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	logger.Info("api server stopped")
}
