package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the daycipe backend.
var Metrics = struct {
	VotesTotal       *prometheus.CounterVec
	HiddenTotal      *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	DBPoolAcquired   prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
}{}

// RegisterMetrics creates and registers all collectors. Must be called
// once before the router starts serving.
func RegisterMetrics(pool *pgxpool.Pool) {
	Metrics.VotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "daycipe_votes_total",
		Help: "Vote mutations applied, by kind and direction.",
	}, []string{"kind", "direction"})

	Metrics.HiddenTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "daycipe_vote_results_hidden_total",
		Help: "Vote mutations that left the item below its hide threshold.",
	}, []string{"kind"})

	Metrics.RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "daycipe_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	Metrics.RequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "daycipe_http_requests_in_flight",
		Help: "In-flight HTTP requests.",
	})

	Metrics.DBPoolAcquired = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "daycipe_db_pool_acquired_conns",
		Help: "Acquired connections in the pgx pool.",
	}, func() float64 {
		return float64(pool.Stat().AcquiredConns())
	})

	Metrics.DBPoolIdle = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "daycipe_db_pool_idle_conns",
		Help: "Idle connections in the pgx pool.",
	}, func() float64 {
		return float64(pool.Stat().IdleConns())
	})

	prometheus.MustRegister(
		Metrics.VotesTotal,
		Metrics.HiddenTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.DBPoolAcquired,
		Metrics.DBPoolIdle,
	)
}

// NewMetricsMiddleware records request duration and in-flight gauge for
// every request.
func NewMetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		Metrics.RequestsInFlight.Dec()
		Metrics.RequestDuration.
			WithLabelValues(c.Method(), strconv.Itoa(c.Response().StatusCode())).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// MetricsHandler exposes the Prometheus registry at /metrics via the
// fasthttp adaptor.
func MetricsHandler() fiber.Handler {
	adapted := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		adapted(c.RequestCtx())
		return nil
	}
}
