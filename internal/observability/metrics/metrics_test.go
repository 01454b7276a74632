package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/customers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/customers/:id", "200"))
	unmatched := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	for _, path := range []string{"/api/customers/1", "/api/customers/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/customers/:id", "200")))
	assert.Equal(t, unmatched+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecordOrderBooked(t *testing.T) {
	orders := testutil.ToFloat64(ordersBooked)
	revenue := testutil.ToFloat64(bookedRevenue)

	RecordOrderBooked(decimal.RequireFromString("100.50"))
	RecordOrderBooked(decimal.RequireFromString("50"))

	assert.Equal(t, orders+2, testutil.ToFloat64(ordersBooked))
	assert.InDelta(t, revenue+150.5, testutil.ToFloat64(bookedRevenue), 1e-9)
}

func TestRecordAuthAttempt(t *testing.T) {
	before := testutil.ToFloat64(authAttempts.WithLabelValues(OpLogin, ResultFailure))
	RecordAuthAttempt(OpLogin, ResultFailure)
	assert.Equal(t, before+1, testutil.ToFloat64(authAttempts.WithLabelValues(OpLogin, ResultFailure)))
}
