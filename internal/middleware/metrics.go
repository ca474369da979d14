package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis errors by command name. Incremented by the cache
// package's client hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devconnect_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"operation"})

// UpstreamRequests counts calls to external collaborators (currently only
// the GitHub repository listing) by outcome.
var UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "devconnect_upstream_requests_total",
	Help: "Total number of upstream API requests by service and outcome",
}, []string{"service", "outcome"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}
