package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingodrills/exercise-service/internal/services"
	"github.com/lingodrills/exercise-service/internal/speech"
	"github.com/lingodrills/exercise-service/internal/utils"
)

// SpeechHandler exposes the playback controls over the single shared
// speech channel.
type SpeechHandler struct {
	BaseHandler
	service services.SpeechService
}

func NewSpeechHandler(service services.SpeechService, logger utils.Logger) *SpeechHandler {
	return &SpeechHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

type speakRequest struct {
	LearnerID string `json:"learner_id"`
	speech.Request
}

// Speak handles POST /speech/speak. With the capability available the
// response body is the synthesized audio; without it, a JSON no-op
// carrying the one-time notice.
func (h *SpeechHandler) Speak(c *gin.Context) {
	var req speakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Code: "bad_request"})
		return
	}

	resp, err := h.service.Speak(c.Request.Context(), req.LearnerID, req.Request)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	if !resp.Available {
		c.JSON(http.StatusOK, resp)
		return
	}

	c.Header("X-Utterance-ID", resp.Utterance.ID)
	c.Data(http.StatusOK, resp.Audio.MIME, resp.Audio.Data)
}

// Pause handles POST /speech/pause
func (h *SpeechHandler) Pause(c *gin.Context) {
	h.service.Pause()
	c.JSON(http.StatusOK, h.service.Status())
}

// Resume handles POST /speech/resume
func (h *SpeechHandler) Resume(c *gin.Context) {
	h.service.Resume()
	c.JSON(http.StatusOK, h.service.Status())
}

// Stop handles POST /speech/stop
func (h *SpeechHandler) Stop(c *gin.Context) {
	h.service.Stop()
	c.JSON(http.StatusOK, h.service.Status())
}

// Status handles GET /speech/status
func (h *SpeechHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Status())
}

// Voices handles GET /speech/voices
func (h *SpeechHandler) Voices(c *gin.Context) {
	voices, err := h.service.Voices(c.Request.Context())
	if err != nil {
		// The voice list is best-effort; an upstream failure is an empty
		// list, not an error page.
		h.logger.Warn("Voice listing failed", "error", err)
		voices = nil
	}
	c.JSON(http.StatusOK, gin.H{"voices": voices})
}
