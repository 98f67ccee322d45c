package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-assistant/internal/common/camunda"
	"job-assistant/internal/common/config"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/common/observability"

	cjr "job-assistant/internal/workers/ai-conversation/compose-job-response"
	pui "job-assistant/internal/workers/ai-conversation/parse-user-intent"
	qjl "job-assistant/internal/workers/ai-conversation/query-job-listings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newWorkerCmd(configPath *string) *cobra.Command {
	var healthAddr string

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the pipeline steps as Zeebe job workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return runWorkers(cmd.Context(), a, healthAddr)
		},
	}

	cmd.Flags().StringVar(&healthAddr, "health-addr", ":8080", "address for /health, /ready and /metrics")
	return cmd
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func runWorkers(ctx context.Context, a *app, healthAddr string) error {
	if a.cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required for the worker command")
	}

	a.obs = observability.New(a.cfg.App.Name + "-worker")

	asst, err := a.buildAssistant(nil)
	if err != nil {
		return err
	}

	var client *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClient(a.cfg.Camunda.BrokerAddress, config.GetDuration(a.cfg.Camunda.RequestTimeout))
		return err
	}, 10, 2*time.Second, a.log, "Zeebe client initialization")
	if err != nil {
		return err
	}
	defer client.Close()
	a.log.Info("Zeebe client connected", map[string]interface{}{"address": a.cfg.Camunda.BrokerAddress})

	handlers := []struct {
		taskType string
		handler  camunda.JobHandler
	}{
		{pui.TaskType, pui.NewHandler(pui.LoadConfig(a.cfg), asst, a.log)},
		{qjl.TaskType, qjl.NewHandler(qjl.LoadConfig(a.cfg), a.source, a.log)},
		{cjr.TaskType, cjr.NewHandler(cjr.LoadConfig(a.cfg), a.log)},
	}

	var workers []*camunda.CamundaWorker
	for _, h := range handlers {
		if !config.IsWorkerEnabled(a.cfg, h.taskType) {
			a.log.Info("worker disabled", map[string]interface{}{"taskType": h.taskType})
			continue
		}
		wc := config.GetWorkerConfig(a.cfg, h.taskType)
		w := camunda.NewWorker(client.GetClient(), camunda.WorkerOptions{
			TaskType:      h.taskType,
			MaxJobsActive: wc.MaxJobsActive,
			Timeout:       config.GetDuration(wc.Timeout),
		}, h.handler, a.log)
		w.Start()
		workers = append(workers, w)
	}
	a.log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	health := &http.Server{
		Addr:              healthAddr,
		Handler:           healthMux(client),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		a.log.Info("Health/Metrics server listening", map[string]interface{}{"address": healthAddr})
		if err := health.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			a.log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	a.log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	_ = health.Shutdown(shutdownCtx)

	a.log.Info("Workers stopped gracefully", nil)
	return nil
}

func healthMux(client *camunda.Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := client.HealthCheck(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
