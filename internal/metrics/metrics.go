package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors are package-level so that services, the account client and the
// HTTP middleware can record without threading a registry through constructors.
// They work unregistered (tests); Register exposes them.

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests processed",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AuthorizationDecisions counts guard outcomes: granted, forbidden, not_found, unauthenticated
	AuthorizationDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_authorization_decisions_total",
		Help: "Account access decisions by result",
	}, []string{"result"})

	// QuotaDecisions counts quota outcomes per resource kind: allowed, exceeded, unknown
	QuotaDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_quota_decisions_total",
		Help: "Quota checks by resource kind and result",
	}, []string{"resource", "result"})

	AccountLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "account_service_requests_total",
		Help: "Requests to the account service by endpoint and result",
	}, []string{"endpoint", "result"})

	AccountLookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "account_service_request_duration_seconds",
		Help:    "Account service request latency",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"endpoint"})
)

// Register registers all collectors on the given registry (or the default one if nil).
// Already registered collectors are ignored.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	collectors := []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AuthorizationDecisions,
		QuotaDecisions,
		AccountLookups,
		AccountLookupDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}
