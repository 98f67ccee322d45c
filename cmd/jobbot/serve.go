package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"job-assistant/internal/common/config"
	"job-assistant/internal/common/database"
	"job-assistant/internal/common/observability"
	"job-assistant/internal/ratelimit"
	"job-assistant/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /get_job_response over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr != "" {
				a.cfg.Server.Address = addr
			}
			return runServe(cmd.Context(), a)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	a.obs = observability.New(a.cfg.App.Name)

	asst, err := a.buildAssistant(nil)
	if err != nil {
		return err
	}

	opts := server.Options{Checks: map[string]server.ReadinessCheck{}}
	if a.cfg.Server.RateLimit.Enabled {
		rdb, err := database.NewRedis(a.cfg.Database.Redis)
		if err != nil {
			return err
		}
		a.closer = append(a.closer, rdb.Close)

		opts.Limiter = ratelimit.New(rdb.Client, a.cfg.Server.RateLimit.Requests,
			config.GetDuration(a.cfg.Server.RateLimit.Window))
		opts.Checks["redis"] = rdb.Ping
	}

	srv := server.New(a.cfg.Server.Address, server.NewRouter(asst, a.log, opts), a.log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(a.cfg.Server.ShutdownTimeout))
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
