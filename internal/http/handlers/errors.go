package handlers

import (
	"errors"
	"net/http"

	"rental-backend/internal/booking"
	"rental-backend/internal/domain"
	"rental-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Validation issues
// come back itemized; an indeterminate availability verdict is a 503 because
// retrying later is the only correct client move.
func RespondDomainError(c *gin.Context, err error) {
	var issues booking.ValidationIssues
	var badRange booking.InvalidRangeError

	switch {
	case errors.As(err, &issues):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), issues)
	case errors.As(err, &badRange):
		respondError(c, http.StatusBadRequest, "invalid_range", err.Error(), nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsIndeterminate(err):
		respondError(c, http.StatusServiceUnavailable, "availability_indeterminate", err.Error(), nil)
	case domain.IsPersistence(err):
		// the store's message passes through verbatim
		respondError(c, http.StatusInternalServerError, "persistence_error", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
