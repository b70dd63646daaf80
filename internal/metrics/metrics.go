// Package metrics holds the prometheus collectors for generation requests.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry rather than the global default registerer.
type Metrics struct {
	Registry     *prometheus.Registry
	Requests     *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	InvalidInput prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docsmith_requests_total",
				Help: "Generation requests sent to the remote service by kind and result",
			},
			[]string{"kind", "result"}, // result: success|error
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docsmith_request_duration_seconds",
				Help:    "Latency of generation requests",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 9), // 0.5s..128s
			},
			[]string{"kind"},
		),
		InvalidInput: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docsmith_invalid_input_total",
				Help: "Submissions rejected before dispatch because the URL was invalid",
			},
		),
	}
	m.Registry.MustRegister(m.Requests, m.Duration, m.InvalidInput)
	return m
}

// ObserveRequest records one finished request. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(kind string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "error"
	}
	m.Requests.WithLabelValues(kind, result).Inc()
	m.Duration.WithLabelValues(kind).Observe(d.Seconds())
}

// IncInvalidInput counts a submission rejected by URL validation.
func (m *Metrics) IncInvalidInput() {
	if m == nil {
		return
	}
	m.InvalidInput.Inc()
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Router returns an http.Handler with /metrics and /healthz registered.
func (m *Metrics) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", m.Handler())
	return mux
}

// Serve listens on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: m.Router(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
