package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelagency_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travelagency_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelagency_auth_attempts_total",
		Help: "Register and login attempts by outcome",
	}, []string{"operation", "result"})

	customersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travelagency_customers_created_total",
		Help: "Customers created",
	})

	ordersBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travelagency_orders_booked_total",
		Help: "Flight orders booked",
	})

	bookedRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travelagency_booked_revenue_total",
		Help: "Sum of flight prices of booked orders",
	})
)

// Auth operation and result label values.
const (
	OpRegister = "register"
	OpLogin    = "login"

	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordAuthAttempt(operation, result string) {
	authAttempts.WithLabelValues(operation, result).Inc()
}

func RecordCustomerCreated() {
	customersCreated.Inc()
}

func RecordOrderBooked(price decimal.Decimal) {
	ordersBooked.Inc()
	bookedRevenue.Add(price.InexactFloat64())
}
