package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "retail",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "retail",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	salesCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "retail",
			Subsystem: "sales",
			Name:      "committed_total",
			Help:      "Total number of sales committed.",
		},
		[]string{"branch", "payment_method"},
	)

	salesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "retail",
			Subsystem: "sales",
			Name:      "rejected_total",
			Help:      "Total number of sale requests rejected.",
		},
		[]string{"reason"},
	)

	salesRevenue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "retail",
			Subsystem: "sales",
			Name:      "revenue_total",
			Help:      "Revenue of committed sales in currency units.",
		},
		[]string{"branch"},
	)

	unitsSold = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "retail",
			Subsystem: "sales",
			Name:      "units_total",
			Help:      "Units sold per product category.",
		},
		[]string{"category"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		salesCommitted,
		salesRejected,
		salesRevenue,
		unitsSold,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware records request count and latency labelled by the matched
// route pattern, so /products/:id stays a single series.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		method := c.Method()
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordSale tracks a committed sale.
func RecordSale(branch, paymentMethod string, revenue int64) {
	salesCommitted.WithLabelValues(branch, paymentMethod).Inc()
	salesRevenue.WithLabelValues(branch).Add(float64(revenue))
}

// RecordUnits tracks units sold for a category.
func RecordUnits(category string, quantity int) {
	unitsSold.WithLabelValues(category).Add(float64(quantity))
}

// RecordRejectedSale tracks a sale request that did not commit.
func RecordRejectedSale(reason string) {
	salesRejected.WithLabelValues(reason).Inc()
}
