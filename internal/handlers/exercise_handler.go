package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lingodrills/exercise-service/internal/repositories"
	"github.com/lingodrills/exercise-service/internal/services"
	"github.com/lingodrills/exercise-service/internal/utils"
)

// ExerciseHandler serves the exercise catalog and the session life cycle:
// start, answer, score, reset.
type ExerciseHandler struct {
	BaseHandler
	service services.ExerciseService
}

func NewExerciseHandler(service services.ExerciseService, logger utils.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListExercises handles GET /exercises
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filters := repositories.ExerciseFilters{
		Kind:    c.Query("kind"),
		PageKey: c.Query("page_key"),
		Limit:   limit,
		Offset:  offset,
	}

	exercises, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exercises": exercises,
		"total":     total,
	})
}

// GetExercise handles GET /exercises/:slug
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.service.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// StartSession handles POST /exercises/:slug/sessions
func (h *ExerciseHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}
	req.ExerciseSlug = c.Param("slug")

	resp, err := h.service.StartSession(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SubmitAnswer handles POST /sessions/:id/answers
func (h *ExerciseHandler) SubmitAnswer(c *gin.Context) {
	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}

	resp, err := h.service.SubmitAnswer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetScore handles GET /sessions/:id/score
func (h *ExerciseHandler) GetScore(c *gin.Context) {
	resp, err := h.service.GetScore(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetSession handles POST /sessions/:id/reset
func (h *ExerciseHandler) ResetSession(c *gin.Context) {
	resp, err := h.service.ResetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StartCountdown handles POST /sessions/:id/countdown
func (h *ExerciseHandler) StartCountdown(c *gin.Context) {
	resp, err := h.service.StartCountdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
