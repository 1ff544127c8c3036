// Package metrics exposes Prometheus collectors for the HTTP surface and the session use cases.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests and multiple fx apps never collide.
type Recorder struct {
	registry *prometheus.Registry

	loginTotal   *prometheus.CounterVec
	refreshTotal *prometheus.CounterVec
	deniedTotal  *prometheus.CounterVec

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var _ service.AuthMetrics = (*Recorder)(nil)

// New builds and registers every collector.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		loginTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_refresh_total",
			Help: "Access token refreshes by outcome.",
		}, []string{"outcome"}),
		deniedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_denied_total",
			Help: "Requests rejected by the authentication or authorization guards.",
		}, []string{"reason"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.loginTotal,
		r.refreshTotal,
		r.deniedTotal,
		r.httpInFlight,
		r.httpRequestsTotal,
		r.httpRequestDuration,
	)

	return r
}

// NewAuthMetrics exposes the recorder as the domain-facing interface.
func NewAuthMetrics(r *Recorder) service.AuthMetrics {
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RegisterDBStats exports the pool statistics of db under the given name.
func (r *Recorder) RegisterDBStats(db *sql.DB, name string) error {
	if err := r.registry.Register(collectors.NewDBStatsCollector(db, name)); err != nil {
		return errors.Wrap(err, "register db stats collector")
	}

	return nil
}

func (r *Recorder) ObserveLogin(outcome string) {
	r.loginTotal.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveRefresh(outcome string) {
	r.refreshTotal.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveDenied(reason string) {
	r.deniedTotal.WithLabelValues(reason).Inc()
}

// Middleware measures every request. The path label is the route template, not the raw URL.
func (r *Recorder) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r.httpInFlight.Inc()
			defer r.httpInFlight.Dec()

			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := []string{c.Request().Method, path, strconv.Itoa(status)}

			r.httpRequestsTotal.WithLabelValues(labels...).Inc()
			r.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// responseStatus predicts the status the error handler will write for err.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
