// Package metrics exposes Prometheus collectors for command handling.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Invocations *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Latency     *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		Invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rolecall",
				Subsystem: "commands",
				Name:      "invocations_total",
				Help:      "Number of command invocations dispatched to a handler.",
			},
			[]string{"command"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rolecall",
				Subsystem: "commands",
				Name:      "failures_total",
				Help:      "Number of reported command failures by kind (command or transport).",
			},
			[]string{"command", "kind"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Buckets:   []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 5, 10},
				Namespace: "rolecall",
				Subsystem: "commands",
				Name:      "latency_seconds",
				Help:      "How long a handler takes to produce its reply, in seconds.",
			},
			[]string{"command"},
		),
	}
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Invocations, m.Failures, m.Latency}
}

// Register adds all collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}

// ObserveFailure counts a reported failure. It has the shape of report.Observer.
func (m *Metrics) ObserveFailure(command, kind string) {
	m.Failures.WithLabelValues(command, kind).Inc()
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		return nil
	}
}
