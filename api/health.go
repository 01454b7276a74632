package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/travelagency/internal/logger"
	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.health)
	router.GET("/ready", h.ready)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Travel Agency API is running"})
}

// ready also checks the database, for orchestrators that gate traffic on it.
func (h *HealthHandler) ready(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db(ctx); err != nil {
			logger.FromContext(ctx).WarnContext(ctx, "readiness check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "UNAVAILABLE", "message": "Database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Ready"})
}

func index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Travel Agency System Backend API",
		"version": apiVersion,
		"endpoints": gin.H{
			"health":    "/api/health",
			"auth":      "/api/auth",
			"customers": "/api/customers",
			"orders":    "/api/orders",
		},
	})
}
