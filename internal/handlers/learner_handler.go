package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingodrills/exercise-service/internal/services"
	"github.com/lingodrills/exercise-service/internal/utils"
)

// LearnerHandler serves per-learner state: progress records, preferences,
// recommendations and result exports.
type LearnerHandler struct {
	BaseHandler
	progress services.ProgressService
	export   services.ExportService
}

func NewLearnerHandler(progress services.ProgressService, export services.ExportService, logger utils.Logger) *LearnerHandler {
	return &LearnerHandler{
		BaseHandler: NewBaseHandler(logger),
		progress:    progress,
		export:      export,
	}
}

// GetProgress handles GET /learners/:id/progress
func (h *LearnerHandler) GetProgress(c *gin.Context) {
	records, err := h.progress.ListProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": records})
}

// GetPreferences handles GET /learners/:id/preferences
func (h *LearnerHandler) GetPreferences(c *gin.Context) {
	prefs := h.progress.GetPreferences(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

type setPreferenceRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// SetPreference handles PUT /learners/:id/preferences
func (h *LearnerHandler) SetPreference(c *gin.Context) {
	var req setPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}

	if err := h.progress.SetPreference(c.Request.Context(), c.Param("id"), req.Key, req.Value); err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "preference saved"})
}

// SaveRecommendation handles POST /learners/:id/recommendations
func (h *LearnerHandler) SaveRecommendation(c *gin.Context) {
	var req services.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}
	req.LearnerID = c.Param("id")

	rec, err := h.progress.SaveRecommendation(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// LatestRecommendation handles GET /learners/:id/recommendations/latest
func (h *LearnerHandler) LatestRecommendation(c *gin.Context) {
	rec, err := h.progress.LatestRecommendation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ExportProgress handles GET /learners/:id/progress/export?format=csv|xlsx
func (h *LearnerHandler) ExportProgress(c *gin.Context) {
	learnerID := c.Param("id")
	format := c.DefaultQuery("format", "csv")

	switch format {
	case "csv":
		data, err := h.export.ExportProgressCSV(c.Request.Context(), learnerID)
		if err != nil {
			h.RespondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-progress.csv", learnerID))
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.export.ExportProgressExcel(c.Request.Context(), learnerID)
		if err != nil {
			h.RespondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-progress.xlsx", learnerID))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "unsupported export format", Code: "bad_request"})
	}
}
