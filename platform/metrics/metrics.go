// Package metrics holds the Prometheus collectors shared by the HTTP layer
// and the chat search module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedstore_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seedstore_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ChatSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedstore_chat_searches_total",
			Help: "Total number of chat searches by outcome",
		},
		[]string{"outcome"},
	)

	ChatSearchMatches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seedstore_chat_search_matches",
			Help:    "Number of products returned per chat search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	ChatCriteriaFields = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedstore_chat_criteria_fields_total",
			Help: "How often each criteria field was extracted from a prompt",
		},
		[]string{"field"},
	)

	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seedstore_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seedstore_emails_sent_total",
			Help: "Notification emails by template and result",
		},
		[]string{"template", "result"},
	)
)

// Chat search outcomes.
const (
	OutcomeMatched = "matched"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)
