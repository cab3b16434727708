package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lingodrills/exercise-service/internal/errors"
	"github.com/lingodrills/exercise-service/internal/services"
	"github.com/lingodrills/exercise-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and error mapping for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// RespondError maps a service error to an HTTP status and body.
func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	var verrs apperrors.ValidationErrors

	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error(), Code: "not_found"})
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "validation failed",
			Details: verrs,
			Code:    "validation_error",
		})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: "validation_error"})
	case errors.Is(err, services.ErrUnknownPreference),
		errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: "bad_request"})
	default:
		h.logger.LogError(err, "Unhandled service error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "internal server error",
			Code:    "internal_error",
		})
	}
}

// HealthCheck responds to liveness probes
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
