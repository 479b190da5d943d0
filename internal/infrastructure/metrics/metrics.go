// Package metrics exposes Prometheus collectors for the HTTP layer, the
// pricing engine and authentication.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "servicehub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "servicehub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "servicehub_http_requests_in_flight",
		Help: "Number of HTTP requests being served",
	})

	pricingCalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "servicehub_pricing_calculations_total",
		Help: "Price calculations by outcome",
	}, []string{"result"})

	pricingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "servicehub_pricing_calculation_duration_seconds",
		Help:    "Duration of price calculations including catalog loads",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	})

	pricingAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "servicehub_pricing_adjustments_total",
		Help: "Adjustments produced by pricing rules",
	}, []string{"rule_type", "kind"})

	pricingSkippedRules = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "servicehub_pricing_skipped_rules_total",
		Help: "Pricing rules skipped because they failed to evaluate",
	}, []string{"rule_type"})

	authEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "servicehub_auth_events_total",
		Help: "Authentication events by type and outcome",
	}, []string{"event", "result"})
)

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, code).Inc()
	httpRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
}

// RequestStarted increments the in-flight gauge; call the returned func when done
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObservePricing records one price calculation
func ObservePricing(result string, duration time.Duration) {
	pricingCalculations.WithLabelValues(result).Inc()
	pricingDuration.Observe(duration.Seconds())
}

// ObserveAdjustment records a discount or surcharge produced by a rule type
func ObserveAdjustment(ruleType, kind string) {
	pricingAdjustments.WithLabelValues(ruleType, kind).Inc()
}

// ObserveSkippedRule records a rule the engine could not evaluate
func ObserveSkippedRule(ruleType string) {
	pricingSkippedRules.WithLabelValues(ruleType).Inc()
}

// ObserveAuth records an authentication event such as login or refresh
func ObserveAuth(event, result string) {
	authEvents.WithLabelValues(event, result).Inc()
}
