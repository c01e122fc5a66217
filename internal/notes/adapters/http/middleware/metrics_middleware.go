package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notes_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_auth_attempts_total",
			Help: "Total authentication attempts by event and outcome",
		},
		[]string{"event", "success"},
	)
)

// NewMetricsMiddleware измеряет длительность запросов. Метка route - шаблон
// маршрута, а не фактический путь, чтобы id не раздували число рядов.
func NewMetricsMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		route := "unmatched"
		if r := ctx.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		httpRequestDuration.
			WithLabelValues(ctx.Method(), route, strconv.Itoa(ctx.Response().StatusCode())).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordAuthAttempt учитывает попытку register, login или bearer проверки.
func RecordAuthAttempt(event string, success bool) {
	authAttempts.WithLabelValues(event, strconv.FormatBool(success)).Inc()
}
