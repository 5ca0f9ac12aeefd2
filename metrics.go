package main

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsRecorder is the narrow interface the scheduler needs; a no-op
// implementation keeps -metrics-addr entirely optional (§6).
type metricsRecorder interface {
	windowDone(stage string)
}

// noopMetrics discards every observation; used whenever -metrics-addr is
// unset so the scheduler never has to branch on whether metrics exist.
type noopMetrics struct{}

func (noopMetrics) windowDone(string) {}

// runMetrics bundles the debug Prometheus collectors for a single run.
type runMetrics struct {
	windowsCompleted *prometheus.CounterVec
}

func newRunMetrics() *runMetrics {
	return &runMetrics{
		windowsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surroundup_windows_completed_total",
				Help: "Analysis windows completed, by pipeline stage.",
			},
			[]string{"stage"},
		),
	}
}

func (m *runMetrics) windowDone(stage string) {
	m.windowsCompleted.WithLabelValues(stage).Inc()
}

// serveMetrics starts the debug metrics HTTP endpoint in the background.
// It never blocks the caller and never fails the run: a bind error is
// logged and the run proceeds without metrics, since -metrics-addr is a
// debug aid, not a required output (§6).
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[metrics] server on %s failed: %v", addr, err)
		}
	}()
}
