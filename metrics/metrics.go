// Package metrics holds the Prometheus collectors shared by the HTTP layer
// and the upstream clients.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tripwise",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tripwise",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	UpstreamCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tripwise",
		Name:      "upstream_calls_total",
		Help:      "Calls to external services, by service and outcome.",
	}, []string{"service", "outcome"})

	UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tripwise",
		Name:      "upstream_call_duration_seconds",
		Help:      "Latency of calls to external services.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"service"})

	SavedPlans = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tripwise",
		Name:      "saved_plan_operations_total",
		Help:      "Saved plan store operations, by operation and outcome.",
	}, []string{"op", "outcome"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		UpstreamCalls,
		UpstreamDuration,
		SavedPlans,
	)
}

// ObserveUpstream records one external call that started at start.
func ObserveUpstream(service string, start time.Time, err error) {
	UpstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
	UpstreamCalls.WithLabelValues(service, outcome(err)).Inc()
}

func ObserveStore(op string, err error) {
	SavedPlans.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "error"
}
