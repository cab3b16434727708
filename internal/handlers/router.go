package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lingodrills/exercise-service/internal/services"
	"github.com/lingodrills/exercise-service/internal/utils"
)

type HandlerManager struct {
	exerciseHandler *ExerciseHandler
	builderHandler  *BuilderHandler
	speechHandler   *SpeechHandler
	learnerHandler  *LearnerHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		exerciseHandler: NewExerciseHandler(serviceManager.Exercise(), logger),
		builderHandler:  NewBuilderHandler(serviceManager.Builder(), logger),
		speechHandler:   NewSpeechHandler(serviceManager.Speech(), logger),
		learnerHandler:  NewLearnerHandler(serviceManager.Progress(), serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Exercise catalog and sessions
		exercises := v1.Group("/exercises")
		{
			exercises.GET("", hm.exerciseHandler.ListExercises)
			exercises.GET("/:slug", hm.exerciseHandler.GetExercise)
			exercises.POST("/:slug/sessions", hm.exerciseHandler.StartSession)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("/:id/answers", hm.exerciseHandler.SubmitAnswer)
			sessions.GET("/:id/score", hm.exerciseHandler.GetScore)
			sessions.POST("/:id/reset", hm.exerciseHandler.ResetSession)
			sessions.POST("/:id/countdown", hm.exerciseHandler.StartCountdown)
		}

		// Paragraph and dialogue builders
		builders := v1.Group("/builders")
		{
			builders.GET("", hm.builderHandler.ListBuilders)
			builders.POST("/:name", hm.builderHandler.Build)
		}

		// Speech playback
		speech := v1.Group("/speech")
		{
			speech.POST("/speak", hm.speechHandler.Speak)
			speech.POST("/pause", hm.speechHandler.Pause)
			speech.POST("/resume", hm.speechHandler.Resume)
			speech.POST("/stop", hm.speechHandler.Stop)
			speech.GET("/status", hm.speechHandler.Status)
			speech.GET("/voices", hm.speechHandler.Voices)
		}

		// Per-learner state
		learners := v1.Group("/learners")
		{
			learners.GET("/:id/progress", hm.learnerHandler.GetProgress)
			learners.GET("/:id/progress/export", hm.learnerHandler.ExportProgress)
			learners.GET("/:id/preferences", hm.learnerHandler.GetPreferences)
			learners.PUT("/:id/preferences", hm.learnerHandler.SetPreference)
			learners.POST("/:id/recommendations", hm.learnerHandler.SaveRecommendation)
			learners.GET("/:id/recommendations/latest", hm.learnerHandler.LatestRecommendation)
		}
	}
}
