// Package metrics holds the billing service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quote sources.
const (
	SourceHTTP  = "http"
	SourceLive  = "live"
	SourceIssue = "issue"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served.",
		},
		[]string{"route", "method", "status"},
	)
	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	invoiceQuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_invoice_quotes_total",
			Help: "Invoice computations by tax scheme and source.",
		},
		[]string{"scheme", "source"},
	)
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(r *http.Request, status int, dur time.Duration) {
	route := RouteLabel(r.URL.Path)
	httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(route, r.Method).Observe(dur.Seconds())
}

// ObserveQuote counts one computed invoice.
func ObserveQuote(scheme, source string) {
	invoiceQuotesTotal.WithLabelValues(scheme, source).Inc()
}

// RouteLabel keeps label cardinality bounded.
func RouteLabel(path string) string {
	switch path {
	case "/billing/invoices/quote":
		return "quote"
	case "/billing/invoices":
		return "issue"
	case "/billing/invoices/pdf":
		return "pdf"
	case "/billing/invoices/live":
		return "live"
	case "/health":
		return "health"
	case "/metrics":
		return "metrics"
	default:
		return "other"
	}
}
