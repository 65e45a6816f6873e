// Package handlers provides HTTP handler implementations for the admin API.
//
// This file defines the standard response utilities used across all endpoints:
// a structured error envelope, consistent JSON serialization, and helpers for
// common HTTP patterns, so responses keep a uniform shape for both success
// and failure cases.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "senior citizen not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrcatalan/go-osca-backend/internal/http/middleware"
	"github.com/jrcatalan/go-osca-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
// RequestID echoes X-Request-ID so client errors correlate with server logs;
// Code is a stable machine-readable string (see errors.go).
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"resource not found"`
}

// fail aborts the request with a structured error. Server errors (>=500) are
// logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// svcFail translates a service-layer error into the matching HTTP response:
// not-found sentinels become 404, conflicts 409, validation failures 400,
// anything else a 500 with a generic message.
func svcFail(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case services.IsConflict(err):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case services.IsValidation(err):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("service error")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// ok writes a success JSON response with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
