package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/Domenick1991/travelagency/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgAllFieldsRequired = "All fields are required"
	msgInvalidBody       = "Invalid request body"
	msgInvalidEmail      = "Invalid email format"
	msgInvalidCustomerID = "Invalid customer id"
)

type errorResponse struct {
	Message string `json:"message"`
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Message: message})
}

// respondError writes a *domain.Error with its own status and message.
// Anything else is logged and answered with a generic 500.
func respondError(c *gin.Context, err error, internalMessage string) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		abortWithMessage(c, statusFor(derr.Kind), derr.Message)
		return
	}

	ctx := c.Request.Context()
	logger.FromContext(ctx).ErrorContext(ctx, internalMessage, slog.String("error", err.Error()))
	abortWithMessage(c, http.StatusInternalServerError, internalMessage)
}

func statusFor(kind error) int {
	switch kind {
	case domain.ErrValidation, domain.ErrConflict:
		return http.StatusBadRequest
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes and validates the body into req. An empty body or a
// missing required field is answered with missingMessage.
func bindJSON(c *gin.Context, req any, missingMessage string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, io.EOF):
		abortWithMessage(c, http.StatusBadRequest, missingMessage)
	case errors.As(err, &verrs):
		abortWithMessage(c, http.StatusBadRequest, validationMessage(verrs, missingMessage))
	default:
		abortWithMessage(c, http.StatusBadRequest, msgInvalidBody)
	}
	return false
}

func validationMessage(verrs validator.ValidationErrors, missingMessage string) string {
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return missingMessage
		}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return msgInvalidEmail
	default:
		return "Invalid " + toSnake(fe.Field())
	}
}

func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidCustomerID)
		return 0, false
	}
	return id, true
}
