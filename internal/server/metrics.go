package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alnah/go-html2pptx"
)

// Metrics collects HTTP and render metrics.
type Metrics struct {
	gatherer prometheus.Gatherer

	requestDuration *prometheus.SummaryVec
	requests        *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	renderFailures  *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. A nil reg gets a fresh
// registry, so independent servers never collide.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	labels := []string{"method", "route", "status"}
	return &Metrics{
		gatherer: reg,
		requestDuration: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "html2pptx_http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			labels,
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "html2pptx_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			labels,
		),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "html2pptx_render_duration_seconds",
			Help:    "Time spent capturing a slide in the browser",
			Buckets: []float64{0.5, 1, 2, 3, 4, 5, 7.5, 10, 20, 30, 60},
		}),
		renderFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "html2pptx_render_failures_total",
				Help: "Failed slide captures by kind",
			},
			[]string{"kind"},
		),
	}
}

// Middleware records a request count and duration per method, route and status.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}

// ObserveRender records one capture. It matches html2pptx.RenderObserver.
func (m *Metrics) ObserveRender(d time.Duration, err error) {
	m.renderDuration.Observe(d.Seconds())
	if err != nil {
		m.renderFailures.WithLabelValues(failureKind(err)).Inc()
	}
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, html2pptx.ErrRenderTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, html2pptx.ErrInvalidViewport):
		return "viewport"
	case errors.Is(err, html2pptx.ErrRenderEngine):
		return "engine"
	}
	return "other"
}
