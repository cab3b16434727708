package services

import (
	"log/slog"

	"github.com/lingodrills/exercise-service/internal/cache"
	"github.com/lingodrills/exercise-service/internal/engine"
	"github.com/lingodrills/exercise-service/internal/events"
	"github.com/lingodrills/exercise-service/internal/repositories"
	"github.com/lingodrills/exercise-service/internal/speech"
	"github.com/lingodrills/exercise-service/internal/utils"
)

// ServiceManager aggregates every service behind one constructor.
type ServiceManager interface {
	Exercise() ExerciseService
	Builder() BuilderService
	Speech() SpeechService
	Progress() ProgressService
	Export() ExportService
}

type serviceManager struct {
	exercise ExerciseService
	builder  BuilderService
	speech   SpeechService
	progress ProgressService
	export   ExportService
}

type Dependencies struct {
	Repo             repositories.Repository
	Registry         *engine.Registry
	Publisher        events.EventPublisher
	SpeechController *speech.Controller
	Preferences      cache.PreferenceStore
	Logger           *slog.Logger
	Validator        *utils.Validator
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		exercise: NewExerciseService(deps.Repo, deps.Registry, deps.Publisher, deps.Logger, deps.Validator),
		builder:  NewBuilderService(deps.Logger, deps.Validator),
		speech:   NewSpeechService(deps.SpeechController, deps.Preferences, deps.Logger, deps.Validator),
		progress: NewProgressService(deps.Repo, deps.Preferences, deps.Logger, deps.Validator),
		export:   NewExportService(deps.Repo, deps.Logger),
	}
}

func (m *serviceManager) Exercise() ExerciseService { return m.exercise }
func (m *serviceManager) Builder() BuilderService   { return m.builder }
func (m *serviceManager) Speech() SpeechService     { return m.speech }
func (m *serviceManager) Progress() ProgressService { return m.progress }
func (m *serviceManager) Export() ExportService     { return m.export }
