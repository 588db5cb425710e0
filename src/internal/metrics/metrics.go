// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package metrics exposes domain check results as Prometheus metrics.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/internal/monitor"
)

const namespace = "tls_cert_monitor"

type stateSeries struct {
	domain string
	state  monitor.State
}

// Recorder updates metrics after every batch of checks.
type Recorder struct {
	registry *prometheus.Registry

	mu       sync.Mutex
	exported map[stateSeries]struct{} // domain_state series of the last run

	domainValid *prometheus.GaugeVec
	domainState *prometheus.GaugeVec
	checks      *prometheus.CounterVec
	issues      prometheus.Gauge
	lastRun     prometheus.Gauge
	runDuration prometheus.Histogram
}

// NewRecorder registers the monitor metrics on a fresh registry, together
// with the Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		exported: make(map[stateSeries]struct{}),
		domainValid: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "domain_valid",
				Help:      "1 if every certificate of the domain outlives the minimum remaining days, 0 otherwise",
			},
			[]string{"domain"},
		),
		domainState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "domain_state",
				Help:      "1 for the current state of the domain (valid, expiring_soon, error)",
			},
			[]string{"domain", "state"},
		),
		checks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checks_total",
				Help:      "Total number of domain checks by resulting state",
			},
			[]string{"state"},
		),
		issues: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "issues",
			Help:      "Number of domains reported as issues by the last run",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time at which the last run finished",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a full batch of checks",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}
}

// Observe records the outcome of one run. Series of domains present in the
// run are overwritten in place and only stale series are deleted, so a
// concurrent scrape never sees a kept domain missing.
func (r *Recorder) Observe(statuses []monitor.Status, elapsed time.Duration, finished time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := make(map[stateSeries]struct{}, len(statuses))
	domains := make(map[string]struct{}, len(statuses))
	issues := 0
	for _, st := range statuses {
		state := st.Classify()
		current[stateSeries{st.Domain, state}] = struct{}{}
		domains[st.Domain] = struct{}{}

		valid := 0.0
		if st.Valid {
			valid = 1
		} else {
			issues++
		}

		r.domainValid.WithLabelValues(st.Domain).Set(valid)
		r.domainState.WithLabelValues(st.Domain, string(state)).Set(1)
		r.checks.WithLabelValues(string(state)).Inc()
	}

	for s := range r.exported {
		if _, ok := current[s]; !ok {
			r.domainState.DeleteLabelValues(s.domain, string(s.state))
		}
		if _, ok := domains[s.domain]; !ok {
			r.domainValid.DeleteLabelValues(s.domain)
		}
	}
	r.exported = current

	r.issues.Set(float64(issues))
	r.lastRun.Set(float64(finished.Unix()))
	r.runDuration.Observe(elapsed.Seconds())
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
