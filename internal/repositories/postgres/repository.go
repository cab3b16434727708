package postgres

import (
	"github.com/lingodrills/exercise-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	exercise repositories.ExerciseRepository
	progress repositories.ProgressRepository
}

// NewRepository builds the Postgres-backed repository aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		exercise: NewExerciseRepository(db),
		progress: NewProgressRepository(db),
	}
}

func (r *repository) Exercise() repositories.ExerciseRepository { return r.exercise }
func (r *repository) Progress() repositories.ProgressRepository { return r.progress }
