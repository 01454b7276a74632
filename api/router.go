package api

import (
	"log/slog"
	"net/http"

	"github.com/Domenick1991/travelagency/docs"
	"github.com/Domenick1991/travelagency/internal/observability/metrics"
	"github.com/Domenick1991/travelagency/internal/service/customers"
	"github.com/Domenick1991/travelagency/internal/service/orders"
	"github.com/Domenick1991/travelagency/internal/service/staff"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterDeps struct {
	Staff          staff.StaffUseCase
	Customers      customers.CustomerUseCase
	Orders         orders.OrderUseCase
	Tokens         TokenVerifier
	DBPing         Pinger
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter wires every route. Everything under /api except auth and health
// requires a bearer token.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(
		RequestID(),
		RequestLogger(deps.Logger),
		Recovery(),
		metrics.GinMiddleware(),
		CORS(deps.AllowedOrigins),
	)

	router.GET("/", index)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.OpenAPI)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json"))))

	apiGroup := router.Group("/api")
	NewHealthHandler(deps.DBPing).Register(apiGroup.Group("/health"))
	NewAuthHandler(deps.Staff).Register(apiGroup.Group("/auth"))

	protected := apiGroup.Group("", AuthRequired(deps.Tokens))
	NewCustomerHandler(deps.Customers).Register(protected.Group("/customers"))
	NewOrderHandler(deps.Orders).Register(protected.Group("/orders"))

	router.NoRoute(func(c *gin.Context) {
		abortWithMessage(c, http.StatusNotFound, "Route not found")
	})
	return router
}
