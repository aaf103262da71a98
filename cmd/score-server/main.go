// cmd/score-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"credit-score-client/internal/common/config"
	"credit-score-client/internal/common/logger"
	"credit-score-client/internal/common/observability"
	"credit-score-client/internal/scoring"
	"credit-score-client/internal/server"
)

const serviceName = "score-server"

func main() {
	zapLog := logger.New("info", "json")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{"service": serviceName})

	secrets, err := config.DefaultSecretSource(cfg.Scoring.SecretsFile)
	if err != nil {
		zapLog.Fatal("secrets source failed", zap.Error(err))
	}
	scorer, err := scoring.NewFromConfig(cfg, secrets, log)
	if err != nil {
		zapLog.Fatal("scoring client configuration failed", zap.Error(err))
	}

	obs, err := observability.New(serviceName)
	if err != nil {
		zapLog.Warn("observability partially initialized", zap.Error(err))
	}
	defer obs.Shutdown()

	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(server.Dependencies{
		ServiceName:   serviceName,
		Scorer:        scorer,
		Observability: obs,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("score server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("score server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("Error shutting down score server", zap.Error(err))
	}
	zapLog.Info("Score server stopped gracefully")
}
