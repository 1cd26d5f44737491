// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"card-application-workers/internal/common/camunda"
	"card-application-workers/internal/common/config"
	"card-application-workers/internal/common/logger"
	"card-application-workers/internal/common/observability"

	vca "card-application-workers/internal/workers/application/validate-card-application"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service":     cfg.App.Name,
		"environment": cfg.App.Environment,
	})
	log.Info("starting worker manager", map[string]interface{}{"version": cfg.App.Version})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe client with retry ---
	client, err := camunda.Connect(ctx, camunda.ClientConfigFrom(cfg.Camunda), log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	log.Info("zeebe client connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	// --- Workers ---
	var workers []worker.JobWorker

	if config.IsWorkerEnabled(cfg, vca.TaskType) {
		workerCfg, err := vca.LoadConfig(cfg)
		if err != nil {
			zapLog.Fatal("invalid validate-card-application config", zap.Error(err))
		}
		handler, err := vca.NewHandler(workerCfg, log, obs)
		if err != nil {
			zapLog.Fatal("failed to create validate-card-application handler", zap.Error(err))
		}
		if w := camunda.StartWorker(client.GetClient(), vca.TaskType, config.GetWorkerConfig(cfg, vca.TaskType), handler, log); w != nil {
			workers = append(workers, w)
		}
	}
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	var srv *http.Server
	if cfg.Metrics.Enabled {
		srv = newHTTPServer(cfg.Metrics, client)
		go func() {
			log.Info("health/metrics server listening", map[string]interface{}{"addr": srv.Addr})
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("health/metrics server failed", map[string]interface{}{"error": err})
			}
		}()
	}

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error stopping health/metrics server", map[string]interface{}{"error": err})
		}
	}

	if err := client.Close(); err != nil {
		log.Error("error closing zeebe client", map[string]interface{}{"error": err})
	}
	log.Info("worker manager stopped gracefully", nil)
}

func newHTTPServer(mc config.MetricsConfig, client *camunda.Client) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := client.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle(mc.Path, promhttp.Handler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", mc.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
