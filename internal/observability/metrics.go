package observability

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// GithubProxyRequests counts outbound GitHub lookups by result.
	GithubProxyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_github_proxy_requests_total",
		Help: "Total number of GitHub repo-lookup requests by result",
	}, []string{"result"})
)

// InitMetrics creates the Prometheus HTTP instrumentation for the given service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler recording per-request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
