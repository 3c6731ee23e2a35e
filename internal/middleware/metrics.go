package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics counts handled HTTP requests by path and status.
type RequestMetrics struct {
	requests *prometheus.CounterVec
}

// NewRequestMetrics registers the request counter with reg.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	m := &RequestMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cardledger_http_requests_total",
			Help: "HTTP requests handled, by route and status code.",
		}, []string{"route", "status"}),
	}
	reg.MustRegister(m.requests)
	return m
}

// Middleware records one counter increment per completed request.
func (m *RequestMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
