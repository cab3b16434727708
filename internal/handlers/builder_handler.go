package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingodrills/exercise-service/internal/services"
	"github.com/lingodrills/exercise-service/internal/utils"
)

// BuilderHandler serves the paragraph/dialogue generators.
type BuilderHandler struct {
	BaseHandler
	service services.BuilderService
}

func NewBuilderHandler(service services.BuilderService, logger utils.Logger) *BuilderHandler {
	return &BuilderHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListBuilders handles GET /builders
func (h *BuilderHandler) ListBuilders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"builders": h.service.Builders()})
}

// Build handles POST /builders/:name
func (h *BuilderHandler) Build(c *gin.Context) {
	var req services.BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}
	req.Builder = c.Param("name")

	resp, err := h.service.Build(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
