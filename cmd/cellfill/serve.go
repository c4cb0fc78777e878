package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/cellfill/internal/cli"
	httpAdapter "github.com/aretw0/cellfill/pkg/adapters/http"
	"github.com/aretw0/cellfill/pkg/observability"
	"github.com/aretw0/cellfill/pkg/persistence/middleware"
	"github.com/aretw0/cellfill/pkg/random"
	"github.com/aretw0/cellfill/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes sessions over a JSON API with server-sent diff events and Prometheus metrics.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		ctx := cmd.Context()
		persistence, err := cli.OpenStore(ctx, cfg.Store, logger, middleware.NewMetricsMiddleware(reg))
		if err != nil {
			return err
		}
		defer persistence.Close()

		streams := httpAdapter.NewStreamManager(logger)

		src := random.NewTime()
		if cfg.Seed != 0 {
			src = random.New(cfg.Seed)
		}
		opts := append(persistence.ManagerOptions(cfg.Store),
			session.WithSource(src),
			session.WithLifecycleHooks(metrics.Hooks()),
			session.WithDiffListener(streams.BroadcastDiff),
			session.WithLogger(logger),
		)
		manager := session.NewManager(persistence.Store, opts...)

		serverOpts := []httpAdapter.Option{httpAdapter.WithLogger(logger), httpAdapter.WithStreams(streams)}
		if cfg.Server.Metrics {
			serverOpts = append(serverOpts, httpAdapter.WithMetrics(reg))
		}
		server, err := httpAdapter.NewServer(ctx, manager, serverOpts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: server.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Cellfill Server", "address", srv.Addr, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("Cellfill Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
