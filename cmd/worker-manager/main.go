// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"credit-score-client/internal/common/camunda"
	"credit-score-client/internal/common/config"
	"credit-score-client/internal/common/logger"
	"credit-score-client/internal/common/observability"
	"credit-score-client/internal/scoring"

	cs "credit-score-client/internal/workers/scoring/credit-score"
)

const (
	serviceName   = "worker-manager"
	healthAddress = ":8081"
)

func main() {
	zapLog := logger.New("info", "console")

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	if !cfg.Camunda.Enabled {
		zapLog.Fatal("camunda is disabled in configuration, nothing to run")
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zeebeClient, err := camunda.Connect(ctx, camunda.ConnectConfigFrom(cfg.Camunda), log)
	if err != nil {
		zapLog.Fatal("zeebe client failed", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Register Workers ---
	var workers []worker.JobWorker

	wcfg := config.GetWorkerConfig(cfg, cs.TaskType)
	handler := cs.NewHandler(cs.LoadConfig(wcfg), scorer, obs, log)
	if w := camunda.StartWorker(zeebeClient, cs.TaskType, wcfg, handler.Handle, log); w != nil {
		workers = append(workers, w)
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		state := "ready"
		if err := camunda.HealthCheck(r.Context(), zeebeClient, 2*time.Second); err != nil {
			status = http.StatusServiceUnavailable
			state = "zeebe unavailable"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": state,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	healthSrv := &http.Server{Addr: healthAddress, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", healthAddress))
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down health server", zap.Error(err))
	}
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
