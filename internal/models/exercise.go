package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExerciseKind string

const (
	KindQuiz          ExerciseKind = "quiz"
	KindMatching      ExerciseKind = "matching"
	KindFillBlank     ExerciseKind = "fill_blank"
	KindSentenceOrder ExerciseKind = "sentence_order"
)

type ItemType string

const (
	ItemMultipleChoice ItemType = "multiple_choice"
	ItemDragMatch      ItemType = "drag_match"
	ItemFillBlank      ItemType = "fill_blank"
	ItemSelect         ItemType = "select"
	ItemFreeText       ItemType = "free_text"
)

// Exercise is a gradable group of items sharing one score counter: a quiz,
// a matching set, or a fill-in-the-blank drill bound to one learning page.
type Exercise struct {
	ID      uint         `json:"id" gorm:"primaryKey"`
	Slug    string       `json:"slug" gorm:"not null;size:120;uniqueIndex" validate:"required,min=1,max=120"`
	Title   string       `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Kind    ExerciseKind `json:"kind" gorm:"not null;index" validate:"required,exercise_kind"`
	PageKey string       `json:"page_key" gorm:"not null;size:120;index" validate:"required"`

	// Scoring bands are page-level constants, not a global policy: the
	// percentage cutoffs for feedback tiers differ between pages.
	Bands datatypes.JSON `json:"bands" gorm:"type:jsonb"` // []ScoreBand, highest cutoff first

	// Optional per-exercise countdown, in seconds. Zero means untimed.
	TimeLimit int `json:"time_limit" gorm:"default:0" validate:"min=0,max=3600"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Items []ExerciseItem `json:"items" gorm:"foreignKey:ExerciseID"`

	// Computed, not stored
	ItemCount int `json:"item_count" gorm:"-"`
}

// ExerciseItem is one gradable unit: a question, a drag target, a blank.
type ExerciseItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	ExerciseID uint     `json:"exercise_id" gorm:"not null;index"`
	Key        string   `json:"key" gorm:"not null;size:80" validate:"required"`
	Position   int      `json:"position" gorm:"not null"`
	Type       ItemType `json:"type" gorm:"not null" validate:"required,item_type"`
	Prompt     string   `json:"prompt" gorm:"type:text;not null" validate:"required"`

	// Options carries the ordered candidate answers for option-based items.
	// Matching is on the stable option key, never on label text.
	Options datatypes.JSON `json:"options" gorm:"type:jsonb"` // []ItemOption

	// Accepted holds the acceptable answers: option keys for option-based
	// items, normalized strings for free-text and select items.
	Accepted datatypes.JSON `json:"accepted" gorm:"type:jsonb"` // []string

	Hint        string `json:"hint" gorm:"type:text"`
	Explanation string `json:"explanation" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ItemOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ScoreBand maps a minimum percentage to the qualitative feedback tier
// shown with a final score.
type ScoreBand struct {
	MinPct  int    `json:"min_pct"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// DefaultScoreBands is the most common tiering across the learning pages.
// Individual exercises may override it via Exercise.Bands.
var DefaultScoreBands = []ScoreBand{
	{MinPct: 90, Label: "excellent", Message: "Excellent work! You've mastered this one."},
	{MinPct: 75, Label: "strong", Message: "Strong result. A quick review and you're there."},
	{MinPct: 55, Label: "good", Message: "Good base. Practice the ones you missed."},
	{MinPct: 0, Label: "keep_practicing", Message: "Keep practicing - try the exercise again."},
}

func (Exercise) TableName() string {
	return "exercises"
}

func (ExerciseItem) TableName() string {
	return "exercise_items"
}

// OptionList decodes the JSON options column.
func (i *ExerciseItem) OptionList() ([]ItemOption, error) {
	if len(i.Options) == 0 {
		return nil, nil
	}
	var opts []ItemOption
	if err := json.Unmarshal(i.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// AcceptedAnswers decodes the JSON accepted-answers column.
func (i *ExerciseItem) AcceptedAnswers() ([]string, error) {
	if len(i.Accepted) == 0 {
		return nil, nil
	}
	var accepted []string
	if err := json.Unmarshal(i.Accepted, &accepted); err != nil {
		return nil, err
	}
	return accepted, nil
}

// BandList decodes the configured score bands, falling back to the defaults
// when the column is empty or malformed.
func (e *Exercise) BandList() []ScoreBand {
	if len(e.Bands) == 0 {
		return DefaultScoreBands
	}
	var bands []ScoreBand
	if err := json.Unmarshal(e.Bands, &bands); err != nil || len(bands) == 0 {
		return DefaultScoreBands
	}
	return bands
}
