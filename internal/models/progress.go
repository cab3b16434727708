package models

import (
	"time"
)

// ProgressRecord is one learner's completion state for one drill, the
// server-side shape of the pages' per-drill {complete, pct} records.
type ProgressRecord struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	LearnerID    string `json:"learner_id" gorm:"not null;size:80;index:idx_progress_learner_slug,unique" validate:"required"`
	ExerciseSlug string `json:"exercise_slug" gorm:"not null;size:120;index:idx_progress_learner_slug,unique" validate:"required"`
	Complete     bool   `json:"complete"`
	Pct          int    `json:"pct" validate:"min=0,max=100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recommendation is the last study recommendation shown to a learner.
type Recommendation struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	LearnerID string `json:"learner_id" gorm:"not null;size:80;index" validate:"required"`
	Reco      string `json:"reco" gorm:"not null;size:200" validate:"required"`
	Name      string `json:"name" gorm:"size:120"`
	Href      string `json:"href" gorm:"size:300"`
	Scenario  string `json:"scenario" gorm:"size:120"`

	When      time.Time `json:"when"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}

func (Recommendation) TableName() string {
	return "recommendations"
}
