package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reco_http_request_duration_seconds",
		Help:    "Latency of recommendation API endpoints",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	RequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_http_requests_total",
		Help: "Total requests served by path and status",
	}, []string{"path", "status"})
)

func Init() {
	prometheus.MustRegister(RequestDuration, RequestTotal)
}

// Middleware observes per-route latency and status counts.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			RequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()

			return err
		}
	}
}
