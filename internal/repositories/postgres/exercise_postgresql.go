package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lingodrills/exercise-service/internal/models"
	"github.com/lingodrills/exercise-service/internal/repositories"
	"gorm.io/gorm"
)

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) repositories.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

func (r *exerciseRepository) GetByID(ctx context.Context, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_items.position ASC")
		}).
		First(&exercise, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	exercise.ItemCount = len(exercise.Items)
	return &exercise, nil
}

func (r *exerciseRepository) GetBySlug(ctx context.Context, slug string) (*models.Exercise, error) {
	var exercise models.Exercise
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_items.position ASC")
		}).
		Where("slug = ?", slug).
		First(&exercise).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get exercise by slug: %w", err)
	}
	exercise.ItemCount = len(exercise.Items)
	return &exercise, nil
}

func (r *exerciseRepository) List(ctx context.Context, filters repositories.ExerciseFilters) ([]*models.Exercise, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Exercise{})

	if filters.Kind != "" {
		query = query.Where("kind = ?", filters.Kind)
	}
	if filters.PageKey != "" {
		query = query.Where("page_key = ?", filters.PageKey)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count exercises: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var exercises []*models.Exercise
	if err := query.Order("slug ASC").Find(&exercises).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, total, nil
}
