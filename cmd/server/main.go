package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/lingodrills/exercise-service/internal/cache"
	"github.com/lingodrills/exercise-service/internal/config"
	"github.com/lingodrills/exercise-service/internal/engine"
	"github.com/lingodrills/exercise-service/internal/handlers"
	"github.com/lingodrills/exercise-service/internal/models"
	"github.com/lingodrills/exercise-service/internal/repositories/postgres"
	"github.com/lingodrills/exercise-service/internal/services"
	"github.com/lingodrills/exercise-service/internal/speech"
	"github.com/lingodrills/exercise-service/internal/utils"
	"github.com/lingodrills/exercise-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var appLogger utils.Logger
	if cfg.Environment == "production" {
		appLogger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		appLogger = utils.NewDevelopmentLogger()
	}
	logger := appLogger.Slog()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&models.Exercise{},
		&models.ExerciseItem{},
		&models.ProgressRecord{},
		&models.Recommendation{},
	); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	// Speech is a best-effort capability: without an API key the
	// controller degrades to a no-op with a one-time notice.
	var synthesizer speech.Synthesizer
	if cfg.TTSAPIKey != "" {
		synthesizer = speech.NewGoogleSynthesizer(cfg.TTSAPIKey, cfg.TTSCacheDir)
	} else {
		logger.Warn("TTS_API_KEY not set, speech playback disabled")
	}
	speechController := speech.NewController(synthesizer, logger)

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:             postgres.NewRepository(db),
		Registry:         engine.NewRegistry(),
		Publisher:        publisher,
		SpeechController: speechController,
		Preferences:      cache.NewRedisPreferenceStore(redisClient, logger),
		Logger:           logger,
		Validator:        utils.NewValidator(),
	})

	router := gin.Default()
	handlerManager := handlers.NewHandlerManager(serviceManager, appLogger)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting exercise service",
		"port", cfg.Port,
		"environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
