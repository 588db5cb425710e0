// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/metrics"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/report"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/schedule"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

func newChecker(a *App, cfg *config.Config, certLog logger.Logger) *monitor.Checker {
	return monitor.NewChecker(a.fetcher(cfg), cfg.Defaults.MinRemainingDays, cfg.Defaults.Concurrency, certLog)
}

func (a *App) watchCommand() *cobra.Command {
	var (
		flags       checkFlags
		interval    time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check domains periodically and export Prometheus metrics",
		Long: `Runs check immediately and then at every interval until interrupted. The
domain list is reloaded on every run. Results are logged and, unless
--metrics-addr is empty, served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				cfg.Watch.Interval = interval.String()
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Watch.MetricsAddr = metricsAddr
			}

			recorder := metrics.NewRecorder()

			var certLog logger.Logger
			if flags.verbose {
				certLog = a.Logger
			}

			task := func(ctx context.Context) {
				start := time.Now()
				list, err := a.loader().Load(ctx, cfg.Source.Location)
				if err != nil {
					a.logf("Watch run skipped: %v", err)
					return
				}

				// A fresh checker captures a fresh evaluation instant per run.
				statuses := newChecker(a, cfg, certLog).CheckDomains(ctx, list)
				recorder.Observe(statuses, time.Since(start), time.Now())
				a.logf("%s", report.Aggregate(statuses).String())
			}

			watcher, err := schedule.New(cfg.WatchInterval(), task, a.Logger)
			if err != nil {
				return err
			}

			if cfg.Watch.MetricsAddr != "" {
				srv, err := a.serveMetrics(cfg.Watch.MetricsAddr, recorder)
				if err != nil {
					_ = watcher.Stop()
					return err
				}
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(ctx)
				}()
			}

			a.logf("Watching %s every %s", cfg.Source.Location, cfg.WatchInterval())
			return watcher.Run(cmd.Context())
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", time.Hour, "time between runs")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", config.DefaultMetricsAddr, "Prometheus listen address, empty disables metrics")

	return cmd
}

func (a *App) serveMetrics(addr string, recorder *metrics.Recorder) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logf("Metrics server stopped: %v", err)
		}
	}()

	a.logf("Serving metrics on http://%s/metrics", ln.Addr())
	return srv, nil
}
