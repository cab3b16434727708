package repositories

import (
	"context"
	"errors"

	"github.com/lingodrills/exercise-service/internal/models"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("record not found")

// IsNotFoundError reports whether an error means "no such row", from this
// package or from gorm directly.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

type ExerciseFilters struct {
	Kind    string
	PageKey string
	Limit   int
	Offset  int
}

// ExerciseRepository is the catalog of exercises and their items.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *models.Exercise) error
	GetByID(ctx context.Context, id uint) (*models.Exercise, error)
	GetBySlug(ctx context.Context, slug string) (*models.Exercise, error)
	List(ctx context.Context, filters ExerciseFilters) ([]*models.Exercise, int64, error)
}

// ProgressRepository stores per-learner completion records and the last
// recommendation shown.
type ProgressRepository interface {
	UpsertProgress(ctx context.Context, record *models.ProgressRecord) error
	GetProgress(ctx context.Context, learnerID, exerciseSlug string) (*models.ProgressRecord, error)
	ListProgress(ctx context.Context, learnerID string) ([]*models.ProgressRecord, error)
	SaveRecommendation(ctx context.Context, rec *models.Recommendation) error
	LatestRecommendation(ctx context.Context, learnerID string) (*models.Recommendation, error)
}

// Repository aggregates access to every repository.
type Repository interface {
	Exercise() ExerciseRepository
	Progress() ProgressRepository
}
