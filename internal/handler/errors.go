package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-platform/internal/domain"
	"booking-platform/pkg/logger"
)

// handleError processes domain errors and returns appropriate HTTP responses
func handleError(c *gin.Context, log *logger.Logger, err error) {
	var appErr *domain.AppError

	switch {
	case errors.As(err, &appErr):
		// Log internal errors but don't expose details to users
		if appErr.Internal {
			log.Errorw("Internal server error", "path", c.FullPath(), "error", appErr.Err)
			abortWithError(c, appErr.StatusCode, "internal_error", "An internal error occurred")
			return
		}
		abortWithError(c, appErr.StatusCode, errorCode(appErr.StatusCode), appErr.Message)

	case errors.Is(err, domain.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "not_found", "The requested resource was not found")

	case errors.Is(err, domain.ErrSessionExpired):
		abortWithError(c, http.StatusUnauthorized, "session_expired", "Session has expired, please sign in again")

	case errors.Is(err, domain.ErrConflict):
		abortWithError(c, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, domain.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())

	case errors.Is(err, domain.ErrRateLimitExceeded):
		abortWithError(c, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests, please try again later")

	default:
		log.Errorw("Unexpected error", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "client_error"
	}
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, domain.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    status,
	})
}

// bindJSON binds the request body and answers 400 on failure
func bindJSON(c *gin.Context, log *logger.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Debugw("Invalid request body", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return false
	}
	return true
}
