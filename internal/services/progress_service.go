package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lingodrills/exercise-service/internal/cache"
	"github.com/lingodrills/exercise-service/internal/models"
	"github.com/lingodrills/exercise-service/internal/repositories"
	"github.com/lingodrills/exercise-service/internal/utils"
)

type RecommendationRequest struct {
	LearnerID string `json:"learner_id" validate:"required"`
	Reco      string `json:"reco" validate:"required,max=200"`
	Name      string `json:"name" validate:"max=120"`
	Href      string `json:"href" validate:"omitempty,url,max=300"`
	Scenario  string `json:"scenario" validate:"max=120"`
}

type ProgressService interface {
	ListProgress(ctx context.Context, learnerID string) ([]*models.ProgressRecord, error)
	SaveRecommendation(ctx context.Context, req *RecommendationRequest) (*models.Recommendation, error)
	LatestRecommendation(ctx context.Context, learnerID string) (*models.Recommendation, error)
	GetPreferences(ctx context.Context, learnerID string) map[string]string
	SetPreference(ctx context.Context, learnerID, key, value string) error
}

type progressService struct {
	repo        repositories.Repository
	preferences cache.PreferenceStore
	logger      *slog.Logger
	validator   *utils.Validator
}

func NewProgressService(
	repo repositories.Repository,
	preferences cache.PreferenceStore,
	logger *slog.Logger,
	validator *utils.Validator,
) ProgressService {
	return &progressService{
		repo:        repo,
		preferences: preferences,
		logger:      logger,
		validator:   validator,
	}
}

func (s *progressService) ListProgress(ctx context.Context, learnerID string) ([]*models.ProgressRecord, error) {
	records, err := s.repo.Progress().ListProgress(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return records, nil
}

func (s *progressService) SaveRecommendation(ctx context.Context, req *RecommendationRequest) (*models.Recommendation, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	rec := &models.Recommendation{
		LearnerID: req.LearnerID,
		Reco:      req.Reco,
		Name:      req.Name,
		Href:      req.Href,
		Scenario:  req.Scenario,
		When:      time.Now().UTC(),
	}
	if err := s.repo.Progress().SaveRecommendation(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save recommendation: %w", err)
	}

	s.logger.Info("Recommendation saved",
		"learner_id", req.LearnerID,
		"reco", req.Reco)
	return rec, nil
}

func (s *progressService) LatestRecommendation(ctx context.Context, learnerID string) (*models.Recommendation, error) {
	rec, err := s.repo.Progress().LatestRecommendation(ctx, learnerID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	return rec, nil
}

func (s *progressService) GetPreferences(ctx context.Context, learnerID string) map[string]string {
	return s.preferences.All(ctx, learnerID)
}

func (s *progressService) SetPreference(ctx context.Context, learnerID, key, value string) error {
	switch key {
	case cache.PrefAccent, cache.PrefDisplayName, cache.PrefDemoLink:
		s.preferences.Set(ctx, learnerID, key, value)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
}
