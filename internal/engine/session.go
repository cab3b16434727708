package engine

import (
	"fmt"
	"math"
	"sync"
)

const (
	// FeedbackCorrect is the fixed confirmation shown for a correct answer.
	FeedbackCorrect = "✅ Correct!"

	// FeedbackChooseFirst is shown when a submission arrives with no
	// selection. The item stays unanswered; this is not a scoring event.
	FeedbackChooseFirst = "Choose an option first."

	incorrectPrefix = "❌ Not quite."
)

// Item is the engine's view of one gradable unit, flattened from the
// catalog row that produced it.
type Item struct {
	Key         string
	Prompt      string
	Accepted    []string
	KeyMatch    bool // option-based: compare stable option keys verbatim
	Hint        string
	Explanation string
}

// itemSlot pairs an Item with its live answered state.
type itemSlot struct {
	item     Item
	state    ItemState
	feedback string
}

// Band is one qualitative feedback tier, selected by minimum percentage.
type Band struct {
	MinPct  int
	Label   string
	Message string
}

// Config describes one exercise session to be created.
type Config struct {
	ExerciseSlug string
	Items        []Item
	Bands        []Band // highest cutoff first
	TimeLimit    int    // seconds, zero for untimed
}

// Verdict is the outcome of one answer submission.
type Verdict struct {
	Key      string
	State    ItemState
	Feedback string
	// Evaluated is true only when this call performed the item's single
	// scoring event. Repeats and empty submissions leave it false.
	Evaluated bool
	Correct   bool
}

// Score is the aggregator's on-demand summary for one session.
type Score struct {
	Correct int
	Total   int
	Pct     int
	Summary string
	Band    Band
}

// Session holds the mutable state of one started exercise: item states,
// the score counter, and the optional countdown. All state that the source
// pages kept in module-scoped variables lives here, guarded by one mutex.
type Session struct {
	mu        sync.Mutex
	id        string
	slug      string
	slots     []*itemSlot
	index     map[string]*itemSlot
	correct   int
	bands     []Band
	countdown *Countdown
}

// NewSession builds a session with every item unanswered.
func NewSession(id string, cfg Config) *Session {
	s := &Session{
		id:    id,
		slug:  cfg.ExerciseSlug,
		index: make(map[string]*itemSlot, len(cfg.Items)),
		bands: cfg.Bands,
	}
	for _, it := range cfg.Items {
		slot := &itemSlot{item: it}
		s.slots = append(s.slots, slot)
		s.index[it.Key] = slot
	}
	if cfg.TimeLimit > 0 {
		s.countdown = NewCountdown(cfg.TimeLimit)
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) ExerciseSlug() string { return s.slug }

// Answer evaluates one submission against one item, at most once. A second
// submission for the same item is a no-op returning the recorded verdict,
// so repeated clicks can never move the score.
func (s *Session) Answer(itemKey, submission string) (Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.index[itemKey]
	if !ok {
		return Verdict{}, fmt.Errorf("%w: %s", ErrUnknownItem, itemKey)
	}

	if slot.state.Answered() {
		return Verdict{Key: itemKey, State: slot.state, Feedback: slot.feedback}, nil
	}

	if normalizeAnswer(submission) == "" {
		return Verdict{Key: itemKey, State: StateUnanswered, Feedback: FeedbackChooseFirst}, nil
	}

	if s.matches(slot.item, submission) {
		slot.state = StateCorrect
		slot.feedback = FeedbackCorrect
		s.correct++
	} else {
		slot.state = StateIncorrect
		slot.feedback = incorrectFeedback(slot.item)
	}

	return Verdict{
		Key:       itemKey,
		State:     slot.state,
		Feedback:  slot.feedback,
		Evaluated: true,
		Correct:   slot.state == StateCorrect,
	}, nil
}

func (s *Session) matches(it Item, submission string) bool {
	if it.KeyMatch {
		for _, accepted := range it.Accepted {
			if submission == accepted {
				return true
			}
		}
		return false
	}
	got := normalizeAnswer(submission)
	for _, accepted := range it.Accepted {
		if got == normalizeAnswer(accepted) {
			return true
		}
	}
	return false
}

func incorrectFeedback(it Item) string {
	msg := incorrectPrefix
	if it.Hint != "" {
		msg += " Hint: " + it.Hint
	}
	if it.Explanation != "" {
		msg += " " + it.Explanation
	}
	return msg
}

// CorrectCount is the running tally of items in the Correct state.
func (s *Session) CorrectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct
}

func (s *Session) TotalCount() int {
	return len(s.slots)
}

// Complete reports whether every item has been answered.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if !slot.state.Answered() {
			return false
		}
	}
	return true
}

// ScoreReport renders the "show score" summary: "3/5 (60%)" plus the
// feedback tier selected by the session's band thresholds.
func (s *Session) ScoreReport() Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.slots)
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(s.correct) / float64(total) * 100))
	}
	return Score{
		Correct: s.correct,
		Total:   total,
		Pct:     pct,
		Summary: fmt.Sprintf("%d/%d (%d%%)", s.correct, total, pct),
		Band:    bandFor(s.bands, pct),
	}
}

func bandFor(bands []Band, pct int) Band {
	for _, b := range bands {
		if pct >= b.MinPct {
			return b
		}
	}
	return Band{Label: "keep_practicing"}
}

// ItemResult is a read-only snapshot of one item's state.
type ItemResult struct {
	Key      string
	Prompt   string
	State    ItemState
	Feedback string
}

// Items returns a snapshot of every item in order.
func (s *Session) Items() []ItemResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ItemResult, 0, len(s.slots))
	for _, slot := range s.slots {
		out = append(out, ItemResult{
			Key:      slot.item.Key,
			Prompt:   slot.item.Prompt,
			State:    slot.state,
			Feedback: slot.feedback,
		})
	}
	return out
}

// Reset returns the session to its initial state: every item unanswered,
// feedback cleared, the counter at zero, the countdown stopped. Safe to
// call at any point, including on an already-reset session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range s.slots {
		slot.state = StateUnanswered
		slot.feedback = ""
	}
	s.correct = 0
	if s.countdown != nil {
		s.countdown.Stop()
	}
}

// Countdown returns the session's countdown, or nil for untimed exercises.
func (s *Session) Countdown() *Countdown {
	return s.countdown
}
