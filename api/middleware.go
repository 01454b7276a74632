package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/travelagency/internal/auth"
	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/Domenick1991/travelagency/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// TokenVerifier validates a bearer token and returns who it was issued to.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// RequestID reuses an incoming X-Request-ID or generates one, and echoes it
// on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger injects a request-scoped logger into the request context and
// logs one line per request. It must run after RequestID.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := base.With(slog.String("request_id", c.GetString(requestIDKey)))
		c.Request = c.Request.WithContext(logger.Inject(c.Request.Context(), reqLog))

		c.Next()

		reqLog.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("duration", time.Since(start).String()),
			slog.String("ip", c.ClientIP()),
		)
	}
}

// Recovery turns a panic into a logged 500 with a JSON body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		ctx := c.Request.Context()
		logger.FromContext(ctx).ErrorContext(ctx, "panic recovered", slog.Any("panic", recovered))
		abortWithMessage(c, http.StatusInternalServerError, "Internal server error")
	})
}

// CORS echoes an allowed Origin with credentials enabled. "*" in the list
// allows any origin. Preflight requests end here with 204.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	_, allowAll := allowed["*"]

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Add("Vary", "Origin")
			if _, ok := allowed[origin]; ok || allowAll {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
				c.Header("Access-Control-Expose-Headers", requestIDHeader)
				c.Header("Access-Control-Max-Age", "300")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// AuthRequired admits requests carrying a valid bearer token. It never
// touches storage.
func AuthRequired(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := auth.ExtractBearer(c.GetHeader("Authorization"))
		if raw == "" {
			abortWithMessage(c, http.StatusUnauthorized, "No token provided")
			return
		}

		principal, err := tokens.Verify(raw)
		if err != nil {
			abortWithMessage(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := domain.WithPrincipal(c.Request.Context(), principal)
		ctx = logger.Inject(ctx, logger.FromContext(ctx).With(slog.Int64("staff_id", principal.ID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
