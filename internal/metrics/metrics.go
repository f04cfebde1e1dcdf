// Package metrics records canvas editing activity in Prometheus format.
//
// Metrics live on a private registry so that tests and multiple servers in one
// process do not collide. All methods are safe on a nil *Metrics, which lets
// callers run without metrics at no cost.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Brush results used as the "result" label of pixel_canvas_brush_total.
const (
	ResultChanged = "changed"
	ResultNoop    = "noop"
	ResultError   = "error"
)

// Metrics holds the collectors for one server.
type Metrics struct {
	registry *prometheus.Registry

	brushTotal   *prometheus.CounterVec
	historyTotal *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	sessionsOpen prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		brushTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pixel_canvas_brush_total",
			Help: "Brush operations by result",
		}, []string{"result"}),
		historyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pixel_canvas_history_total",
			Help: "History operations by kind (undo, redo, start_block, close_block)",
		}, []string{"op"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pixel_canvas_tool_duration_seconds",
			Help:    "Tool call latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		}, []string{"tool"}),
		sessionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pixel_canvas_sessions_open",
			Help: "Number of open canvas sessions",
		}),
	}

	m.registry.MustRegister(m.brushTotal, m.historyTotal, m.toolDuration, m.sessionsOpen)
	return m
}

// Brush counts one brush call with the given result.
func (m *Metrics) Brush(result string) {
	if m == nil {
		return
	}
	m.brushTotal.WithLabelValues(result).Inc()
}

// History counts one history operation.
func (m *Metrics) History(op string) {
	if m == nil {
		return
	}
	m.historyTotal.WithLabelValues(op).Inc()
}

// ObserveTool records how long a tool call took.
func (m *Metrics) ObserveTool(tool string, d time.Duration) {
	if m == nil {
		return
	}
	m.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// SetSessions sets the open session gauge.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessionsOpen.Set(float64(n))
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
