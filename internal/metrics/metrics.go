// Package metrics owns the Prometheus collectors exposed at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mini_crm"

// Collector groups the application collectors on a private registry so
// tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	httpInFlight  prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	authAttempts  *prometheus.CounterVec
	reminderEvent prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	})
	c.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests handled.",
	}, []string{"method", "route", "status"})
	c.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
	}, []string{"method", "route"})
	c.authAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "attempts_total",
		Help:      "Sign-up and login attempts by outcome.",
	}, []string{"op", "result"})
	c.reminderEvent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifier",
		Name:      "reminders_published_total",
		Help:      "Due reminders published to subscribers.",
	})

	c.registry.MustRegister(
		c.httpInFlight,
		c.httpRequests,
		c.httpDuration,
		c.authAttempts,
		c.reminderEvent,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records one observation per request, labelled by the matched
// route template rather than the raw path.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.URL.Path == "/metrics" {
			ctx.Next()
			return
		}
		start := time.Now()
		c.httpInFlight.Inc()
		defer c.httpInFlight.Dec()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.httpRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// AuthAttempt counts a sign-up or login outcome ("ok", "rejected", "error").
func (c *Collector) AuthAttempt(op, result string) {
	c.authAttempts.WithLabelValues(op, result).Inc()
}

// ReminderPublished counts one due-reminder event.
func (c *Collector) ReminderPublished() {
	c.reminderEvent.Inc()
}
