package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventDrillCompleted EventType = "drill.completed"
	EventDrillReset     EventType = "drill.reset"
)

const (
	eventSource  = "exercise-service"
	eventVersion = "1.0"
)

// DrillCompletionEvent is emitted when a learner finishes every item of
// an exercise, and when a finished drill is reset.
type DrillCompletionEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	LearnerID    string `json:"learner_id"`
	ExerciseSlug string `json:"exercise_slug"`
	SessionID    string `json:"session_id"`
	Correct      int    `json:"correct"`
	Total        int    `json:"total"`
	Pct          int    `json:"pct"`
	Complete     bool   `json:"complete"`
	Band         string `json:"band"`
}

// NewDrillCompletionEvent stamps identity and envelope metadata.
func NewDrillCompletionEvent(eventType EventType) *DrillCompletionEvent {
	return &DrillCompletionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
	}
}
