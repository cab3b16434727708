package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lingodrills/exercise-service/internal/engine"
	"github.com/lingodrills/exercise-service/internal/events"
	"github.com/lingodrills/exercise-service/internal/models"
	"github.com/lingodrills/exercise-service/internal/repositories"
	"github.com/lingodrills/exercise-service/internal/utils"
)

// ===== REQUEST / RESPONSE TYPES =====

type StartSessionRequest struct {
	ExerciseSlug string `json:"exercise_slug" validate:"required"`
	LearnerID    string `json:"learner_id" validate:"required"`
}

type SubmitAnswerRequest struct {
	ItemKey string `json:"item_key" validate:"required"`
	// Answer may be blank: "no selection yet" is feedback, not an error.
	Answer string `json:"answer"`
}

type SessionItemView struct {
	Key      string              `json:"key"`
	Prompt   string              `json:"prompt"`
	Options  []models.ItemOption `json:"options,omitempty"`
	State    string              `json:"state"`
	Feedback string              `json:"feedback,omitempty"`
}

type SessionResponse struct {
	SessionID     string            `json:"session_id"`
	ExerciseSlug  string            `json:"exercise_slug"`
	ExerciseTitle string            `json:"exercise_title"`
	Items         []SessionItemView `json:"items"`
	CorrectCount  int               `json:"correct_count"`
	TotalCount    int               `json:"total_count"`
	TimeLimit     int               `json:"time_limit,omitempty"`
	TimeRemaining int               `json:"time_remaining,omitempty"`
}

type AnswerResponse struct {
	ItemKey      string `json:"item_key"`
	State        string `json:"state"`
	Feedback     string `json:"feedback"`
	Evaluated    bool   `json:"evaluated"`
	Correct      bool   `json:"correct"`
	CorrectCount int    `json:"correct_count"`
	TotalCount   int    `json:"total_count"`
	Complete     bool   `json:"complete"`
}

type ScoreResponse struct {
	SessionID string `json:"session_id"`
	Correct   int    `json:"correct"`
	Total     int    `json:"total"`
	Pct       int    `json:"pct"`
	Summary   string `json:"summary"`
	BandLabel string `json:"band_label"`
	Message   string `json:"message"`
}

// ===== SERVICE =====

type ExerciseService interface {
	List(ctx context.Context, filters repositories.ExerciseFilters) ([]*models.Exercise, int64, error)
	Get(ctx context.Context, slug string) (*models.Exercise, error)
	StartSession(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *SubmitAnswerRequest) (*AnswerResponse, error)
	GetScore(ctx context.Context, sessionID string) (*ScoreResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*SessionResponse, error)
	StartCountdown(ctx context.Context, sessionID string) (*SessionResponse, error)
}

// sessionMeta carries what the engine does not need to know: who started
// the session and which catalog row it came from.
type sessionMeta struct {
	learnerID string
	exercise  *models.Exercise
}

type exerciseService struct {
	repo      repositories.Repository
	registry  *engine.Registry
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator

	mu   sync.RWMutex
	meta map[string]*sessionMeta
}

func NewExerciseService(
	repo repositories.Repository,
	registry *engine.Registry,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) ExerciseService {
	return &exerciseService{
		repo:      repo,
		registry:  registry,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		meta:      make(map[string]*sessionMeta),
	}
}

func (s *exerciseService) List(ctx context.Context, filters repositories.ExerciseFilters) ([]*models.Exercise, int64, error) {
	return s.repo.Exercise().List(ctx, filters)
}

func (s *exerciseService) Get(ctx context.Context, slug string) (*models.Exercise, error) {
	exercise, err := s.repo.Exercise().GetBySlug(ctx, slug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return exercise, nil
}

func (s *exerciseService) StartSession(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	exercise, err := s.Get(ctx, req.ExerciseSlug)
	if err != nil {
		return nil, err
	}
	if len(exercise.Items) == 0 {
		return nil, ErrExerciseNoItems
	}

	cfg, err := sessionConfig(exercise)
	if err != nil {
		return nil, err
	}

	session := engine.NewSession(uuid.NewString(), cfg)
	s.registry.Add(session)

	s.mu.Lock()
	s.meta[session.ID()] = &sessionMeta{learnerID: req.LearnerID, exercise: exercise}
	s.mu.Unlock()

	s.logger.Info("Exercise session started",
		"session_id", session.ID(),
		"exercise_slug", exercise.Slug,
		"learner_id", req.LearnerID)

	return s.sessionResponse(session, exercise), nil
}

// sessionConfig flattens a catalog exercise into the engine's view of it.
func sessionConfig(exercise *models.Exercise) (engine.Config, error) {
	items := make([]engine.Item, 0, len(exercise.Items))
	for i := range exercise.Items {
		item := &exercise.Items[i]
		accepted, err := item.AcceptedAnswers()
		if err != nil {
			return engine.Config{}, fmt.Errorf("item %s has malformed accepted answers: %w", item.Key, err)
		}
		items = append(items, engine.Item{
			Key:         item.Key,
			Prompt:      item.Prompt,
			Accepted:    accepted,
			KeyMatch:    item.Type == models.ItemMultipleChoice || item.Type == models.ItemDragMatch,
			Hint:        item.Hint,
			Explanation: item.Explanation,
		})
	}

	bands := make([]engine.Band, 0)
	for _, b := range exercise.BandList() {
		bands = append(bands, engine.Band{MinPct: b.MinPct, Label: b.Label, Message: b.Message})
	}

	return engine.Config{
		ExerciseSlug: exercise.Slug,
		Items:        items,
		Bands:        bands,
		TimeLimit:    exercise.TimeLimit,
	}, nil
}

func (s *exerciseService) SubmitAnswer(ctx context.Context, sessionID string, req *SubmitAnswerRequest) (*AnswerResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	session, meta, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	verdict, err := session.Answer(req.ItemKey, req.Answer)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, req.ItemKey)
	}

	complete := session.Complete()
	if verdict.Evaluated && complete {
		// Completion persistence and the event are best-effort: a storage
		// or broker failure never fails the learner's answer.
		s.recordCompletion(ctx, session, meta)
	}

	return &AnswerResponse{
		ItemKey:      verdict.Key,
		State:        verdict.State.String(),
		Feedback:     verdict.Feedback,
		Evaluated:    verdict.Evaluated,
		Correct:      verdict.Correct,
		CorrectCount: session.CorrectCount(),
		TotalCount:   session.TotalCount(),
		Complete:     complete,
	}, nil
}

func (s *exerciseService) recordCompletion(ctx context.Context, session *engine.Session, meta *sessionMeta) {
	score := session.ScoreReport()

	record := &models.ProgressRecord{
		LearnerID:    meta.learnerID,
		ExerciseSlug: session.ExerciseSlug(),
		Complete:     true,
		Pct:          score.Pct,
	}
	if err := s.repo.Progress().UpsertProgress(ctx, record); err != nil {
		s.logger.Error("Failed to persist completion record",
			"session_id", session.ID(), "error", err)
	}

	event := events.NewDrillCompletionEvent(events.EventDrillCompleted)
	event.LearnerID = meta.learnerID
	event.ExerciseSlug = session.ExerciseSlug()
	event.SessionID = session.ID()
	event.Correct = score.Correct
	event.Total = score.Total
	event.Pct = score.Pct
	event.Complete = true
	event.Band = score.Band.Label
	if err := s.publisher.PublishCompletionEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish completion event",
			"session_id", session.ID(), "error", err)
	}
}

func (s *exerciseService) GetScore(ctx context.Context, sessionID string) (*ScoreResponse, error) {
	session, _, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	score := session.ScoreReport()
	return &ScoreResponse{
		SessionID: sessionID,
		Correct:   score.Correct,
		Total:     score.Total,
		Pct:       score.Pct,
		Summary:   score.Summary,
		BandLabel: score.Band.Label,
		Message:   score.Band.Message,
	}, nil
}

func (s *exerciseService) ResetSession(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, meta, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.Reset()
	s.logger.Info("Exercise session reset",
		"session_id", sessionID,
		"exercise_slug", session.ExerciseSlug())

	return s.sessionResponse(session, meta.exercise), nil
}

func (s *exerciseService) StartCountdown(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, meta, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if cd := session.Countdown(); cd != nil {
		started := cd.Start(func() {
			s.logger.Info("Countdown expired", "session_id", sessionID)
		})
		if !started {
			s.logger.Debug("Countdown already running", "session_id", sessionID)
		}
	}
	return s.sessionResponse(session, meta.exercise), nil
}

func (s *exerciseService) lookup(sessionID string) (*engine.Session, *sessionMeta, error) {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}
	s.mu.RLock()
	meta := s.meta[sessionID]
	s.mu.RUnlock()
	if meta == nil {
		return nil, nil, ErrSessionNotFound
	}
	return session, meta, nil
}

func (s *exerciseService) sessionResponse(session *engine.Session, exercise *models.Exercise) *SessionResponse {
	optionsByKey := make(map[string][]models.ItemOption, len(exercise.Items))
	for i := range exercise.Items {
		item := &exercise.Items[i]
		if opts, err := item.OptionList(); err == nil {
			optionsByKey[item.Key] = opts
		}
	}

	views := make([]SessionItemView, 0, session.TotalCount())
	for _, item := range session.Items() {
		views = append(views, SessionItemView{
			Key:      item.Key,
			Prompt:   item.Prompt,
			Options:  optionsByKey[item.Key],
			State:    item.State.String(),
			Feedback: item.Feedback,
		})
	}

	resp := &SessionResponse{
		SessionID:     session.ID(),
		ExerciseSlug:  exercise.Slug,
		ExerciseTitle: exercise.Title,
		Items:         views,
		CorrectCount:  session.CorrectCount(),
		TotalCount:    session.TotalCount(),
		TimeLimit:     exercise.TimeLimit,
	}
	if cd := session.Countdown(); cd != nil {
		resp.TimeRemaining = cd.Remaining()
	}
	return resp
}
