// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SearchesLogged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bargain_searches_logged_total",
		Help: "Searches counted against a daily quota",
	})

	QuotaDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bargain_quota_denied_total",
			Help: "Search attempts rejected by the daily quota",
		},
		[]string{"tier"},
	)

	UpstreamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bargain_upstream_failures_total",
			Help: "Failed calls to external deal sources",
		},
		[]string{"kind"},
	)

	AlertNotifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bargain_alerts_notifications_total",
		Help: "Store alert notifications handed to the notifier",
	})
)
