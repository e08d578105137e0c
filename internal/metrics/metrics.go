// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Incoming API requests
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storeconfig_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storeconfig_http_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Calls to the catalog backend
	catalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storeconfig_catalog_request_duration_seconds",
			Help:    "Catalog backend request latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"method", "endpoint", "status"},
	)

	configSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storeconfig_config_saves_total",
			Help: "Store configuration saves by outcome",
		},
		[]string{"operation", "result"},
	)

	dashboardLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storeconfig_dashboard_loads_total",
			Help: "Dashboard snapshot loads by outcome",
		},
		[]string{"result"},
	)

	marketplaceCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storeconfig_marketplace_cache_total",
			Help: "Marketplace list cache lookups",
		},
		[]string{"result"},
	)
)

func ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func ObserveCatalogRequest(method, endpoint, status string, elapsed time.Duration) {
	catalogRequestDuration.WithLabelValues(method, endpoint, status).Observe(elapsed.Seconds())
}

// RecordConfigSave counts a create or update by result (ok, invalid, failed)
func RecordConfigSave(operation, result string) {
	configSavesTotal.WithLabelValues(operation, result).Inc()
}

// RecordDashboardLoad counts a dashboard load by result (ok, stale, failed)
func RecordDashboardLoad(result string) {
	dashboardLoadsTotal.WithLabelValues(result).Inc()
}

// RecordMarketplaceCache counts a cache hit or miss
func RecordMarketplaceCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	marketplaceCacheTotal.WithLabelValues(result).Inc()
}
