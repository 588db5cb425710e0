// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package lambda

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/domains"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/report"
	x509chain "github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

// ErrNoLocation indicates a monitor request without a domain list location
// and no configured fallback.
var ErrNoLocation = errors.New("config error: s3_config_location is required")

// MonitorRequest is the monitor function's input event.
type MonitorRequest struct {
	S3ConfigLocation string `json:"s3_config_location"`
}

// MonitorResponse is the monitor function's output.
type MonitorResponse struct {
	ReqID    string           `json:"req_id"`
	Statuses []monitor.Status `json:"statuses"`
}

// ReporterResponse is the reporter function's output.
type ReporterResponse struct {
	Report report.Report `json:"report"`
}

// Monitor handles monitor invocations.
type Monitor struct {
	Config  *config.Config
	Fetcher monitor.ChainFetcher
	Loader  *domains.Loader
	Logger  logger.Logger
}

// NewMonitor wires a Monitor for the given configuration.
func NewMonitor(cfg *config.Config, log logger.Logger) *Monitor {
	return &Monitor{
		Config: cfg,
		Fetcher: &x509chain.Fetcher{
			Port:    cfg.Defaults.Port,
			Timeout: cfg.TimeoutDuration(),
		},
		Loader: &domains.Loader{Logger: log},
		Logger: log,
	}
}

// Handle loads the domain list named by the request, checks every domain and
// returns their statuses in list order.
//
// A domain list that cannot be loaded fails the invocation with a config
// error. Individual domain failures never do; they are reported in the
// corresponding status.
func (m *Monitor) Handle(ctx context.Context, req MonitorRequest) (MonitorResponse, error) {
	location := req.S3ConfigLocation
	if location == "" {
		location = m.Config.Source.Location
	}
	if location == "" {
		return MonitorResponse{}, ErrNoLocation
	}

	list, err := m.Loader.Load(ctx, location)
	if err != nil {
		return MonitorResponse{}, err
	}

	checker := monitor.NewChecker(m.Fetcher, m.Config.Defaults.MinRemainingDays, m.Config.Defaults.Concurrency, m.Logger)
	statuses := checker.CheckDomains(ctx, list)

	return MonitorResponse{
		ReqID:    requestID(ctx),
		Statuses: statuses,
	}, nil
}

// Reporter handles reporter invocations.
type Reporter struct {
	Logger logger.Logger
}

// Handle validates the incoming status batch and aggregates it.
func (r *Reporter) Handle(_ context.Context, payload json.RawMessage) (ReporterResponse, error) {
	batch, err := report.ValidateStatusesJSON(payload)
	if err != nil {
		return ReporterResponse{}, err
	}

	rep := report.Aggregate(batch.Statuses)
	if r.Logger != nil {
		if rep.IsValid() {
			r.Logger.Println("Everything is fine")
		} else {
			r.Logger.Printf("Composed message %s", rep.Message())
		}
	}

	return ReporterResponse{Report: rep}, nil
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
