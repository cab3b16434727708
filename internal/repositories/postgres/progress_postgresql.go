package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lingodrills/exercise-service/internal/models"
	"github.com/lingodrills/exercise-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) repositories.ProgressRepository {
	return &progressRepository{db: db}
}

// UpsertProgress writes the learner's completion record for one drill,
// overwriting the previous pct/complete pair.
func (r *progressRepository) UpsertProgress(ctx context.Context, record *models.ProgressRecord) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "learner_id"}, {Name: "exercise_slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"complete", "pct", "updated_at"}),
		}).
		Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepository) GetProgress(ctx context.Context, learnerID, exerciseSlug string) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("learner_id = ? AND exercise_slug = ?", learnerID, exerciseSlug).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &record, nil
}

func (r *progressRepository) ListProgress(ctx context.Context, learnerID string) ([]*models.ProgressRecord, error) {
	var records []*models.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("exercise_slug ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return records, nil
}

func (r *progressRepository) SaveRecommendation(ctx context.Context, rec *models.Recommendation) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

func (r *progressRepository) LatestRecommendation(ctx context.Context, learnerID string) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := r.db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("created_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get latest recommendation: %w", err)
	}
	return &rec, nil
}
