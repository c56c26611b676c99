package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/tonmint/tonmint/internal/command"
	"github.com/tonmint/tonmint/internal/config"
	"github.com/tonmint/tonmint/internal/server"
)

const (
	metricsFlag = "metrics"

	shutdownTimeout = 5 * time.Second
)

func GetCommand() *cobra.Command {
	var metrics bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts HTTP API, configured with environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, metrics)
		},
	}

	cmd.Flags().BoolVar(&metrics, metricsFlag, true, "serve prometheus metrics on /metrics")

	return cmd
}

func runCommand(cmd *cobra.Command, metrics bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if cmd.Flags().Changed(command.LogLevelFlag) {
		level, _ = cmd.Flags().GetString(command.LogLevelFlag)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "tonmint",
		Level:  hclog.LevelFromString(level),
		Output: cmd.ErrOrStderr(),
	})

	opts := []server.Option{server.WithLogger(logger)}
	if metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, server.WithRegistry(reg))
	}

	srv, err := server.New(cfg, opts...)
	if err != nil {
		return err
	}

	srv.Preload()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	select {
	case err = <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-signalCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown: %w", err)
	}
	return nil
}
