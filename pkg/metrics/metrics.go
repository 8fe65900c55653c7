// Package metrics provides Prometheus metrics for the meal battle service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "mealmax"
	subsystem = "api"
)

var registry = prometheus.NewRegistry()

// Core business metrics.
var (
	MealsCreated = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "meals_created_total",
		Help:      "Total number of meals created.",
	})

	BattlesFought = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "battles_total",
		Help:      "Total number of battles resolved.",
	})

	BattleErrors = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "battle_errors_total",
		Help:      "Total number of battles that failed to resolve.",
	})

	RandomFetchErrors = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "random_fetch_errors_total",
		Help:      "Total number of failed random.org lookups.",
	})
)

// HTTP performance metrics.
var (
	HTTPRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Handler exposes the service registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
