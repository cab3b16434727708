package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveQuestionQuiz() *Session {
	items := make([]Item, 0, 5)
	for i := 1; i <= 5; i++ {
		items = append(items, Item{
			Key:      fmt.Sprintf("q%d", i),
			Prompt:   fmt.Sprintf("Question %d", i),
			Accepted: []string{"a"},
			KeyMatch: true,
			Hint:     "Think about the example sentence.",
		})
	}
	return NewSession("sess-1", Config{
		ExerciseSlug: "present-simple-quiz",
		Items:        items,
		Bands: []Band{
			{MinPct: 90, Label: "excellent", Message: "Excellent work!"},
			{MinPct: 75, Label: "strong", Message: "Strong result."},
			{MinPct: 55, Label: "good", Message: "Good base."},
			{MinPct: 0, Label: "keep_practicing", Message: "Keep practicing."},
		},
	})
}

func TestAnswerScoresAtMostOnce(t *testing.T) {
	s := fiveQuestionQuiz()

	v, err := s.Answer("q1", "a")
	require.NoError(t, err)
	assert.True(t, v.Evaluated)
	assert.True(t, v.Correct)
	assert.Equal(t, StateCorrect, v.State)
	assert.Equal(t, FeedbackCorrect, v.Feedback)
	assert.Equal(t, 1, s.CorrectCount())

	// Clicking the same option repeatedly must never move the score.
	for i := 0; i < 5; i++ {
		v, err = s.Answer("q1", "a")
		require.NoError(t, err)
		assert.False(t, v.Evaluated)
		assert.Equal(t, StateCorrect, v.State)
	}
	assert.Equal(t, 1, s.CorrectCount())

	// Nor may switching to a wrong option after the lock.
	v, err = s.Answer("q1", "b")
	require.NoError(t, err)
	assert.False(t, v.Evaluated)
	assert.Equal(t, StateCorrect, v.State)
	assert.Equal(t, 1, s.CorrectCount())
}

func TestAnswerIncorrectKeepsCounter(t *testing.T) {
	s := fiveQuestionQuiz()

	v, err := s.Answer("q1", "b")
	require.NoError(t, err)
	assert.True(t, v.Evaluated)
	assert.False(t, v.Correct)
	assert.Equal(t, StateIncorrect, v.State)
	assert.Contains(t, v.Feedback, "❌")
	assert.Contains(t, v.Feedback, "Think about the example sentence.")
	assert.Equal(t, 0, s.CorrectCount())

	// Incorrect locks the item too: a later correct click is ignored.
	v, err = s.Answer("q1", "a")
	require.NoError(t, err)
	assert.False(t, v.Evaluated)
	assert.Equal(t, StateIncorrect, v.State)
	assert.Equal(t, 0, s.CorrectCount())
}

func TestAnswerEmptySubmissionIsNotScoring(t *testing.T) {
	s := fiveQuestionQuiz()

	v, err := s.Answer("q1", "   ")
	require.NoError(t, err)
	assert.False(t, v.Evaluated)
	assert.Equal(t, StateUnanswered, v.State)
	assert.Equal(t, FeedbackChooseFirst, v.Feedback)
	assert.Equal(t, 0, s.CorrectCount())

	// The item is still open for a real answer.
	v, err = s.Answer("q1", "a")
	require.NoError(t, err)
	assert.True(t, v.Evaluated)
	assert.Equal(t, 1, s.CorrectCount())
}

func TestAnswerUnknownItem(t *testing.T) {
	s := fiveQuestionQuiz()
	_, err := s.Answer("q99", "a")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestScoreBoundsHoldInAnyOrder(t *testing.T) {
	s := fiveQuestionQuiz()
	submissions := []struct{ key, answer string }{
		{"q3", "b"}, {"q1", "a"}, {"q5", "a"}, {"q2", "b"}, {"q4", "a"},
	}
	for _, sub := range submissions {
		_, err := s.Answer(sub.key, sub.answer)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.CorrectCount(), 0)
		assert.LessOrEqual(t, s.CorrectCount(), s.TotalCount())
	}
	assert.Equal(t, 3, s.CorrectCount())
	assert.True(t, s.Complete())
}

func TestScoreReportScenario(t *testing.T) {
	// 5-question quiz, 3 correct and 2 wrong in arbitrary order.
	s := fiveQuestionQuiz()
	for _, sub := range []struct{ key, answer string }{
		{"q2", "x"}, {"q5", "a"}, {"q1", "a"}, {"q4", "x"}, {"q3", "a"},
	} {
		_, err := s.Answer(sub.key, sub.answer)
		require.NoError(t, err)
	}

	score := s.ScoreReport()
	assert.Equal(t, 3, score.Correct)
	assert.Equal(t, 5, score.Total)
	assert.Equal(t, 60, score.Pct)
	assert.Equal(t, "3/5 (60%)", score.Summary)
	assert.Equal(t, "good", score.Band.Label)
}

func TestScoreBandEdges(t *testing.T) {
	bands := []Band{
		{MinPct: 90, Label: "excellent"},
		{MinPct: 75, Label: "strong"},
		{MinPct: 55, Label: "good"},
		{MinPct: 0, Label: "keep_practicing"},
	}
	tests := []struct {
		pct  int
		want string
	}{
		{100, "excellent"},
		{90, "excellent"},
		{89, "strong"},
		{75, "strong"},
		{60, "good"},
		{55, "good"},
		{54, "keep_practicing"},
		{0, "keep_practicing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bandFor(bands, tt.pct).Label, "pct %d", tt.pct)
	}
}

func TestResetIsCompleteAndIdempotent(t *testing.T) {
	s := fiveQuestionQuiz()
	_, _ = s.Answer("q1", "a")
	_, _ = s.Answer("q2", "b")

	s.Reset()
	assert.Equal(t, 0, s.CorrectCount())
	for _, item := range s.Items() {
		assert.Equal(t, StateUnanswered, item.State)
		assert.Empty(t, item.Feedback)
	}

	// Items answer again after reset: the lock is gone.
	v, err := s.Answer("q1", "a")
	require.NoError(t, err)
	assert.True(t, v.Evaluated)
	assert.Equal(t, 1, s.CorrectCount())

	// Reset on an already-reset session changes nothing.
	s.Reset()
	s.Reset()
	assert.Equal(t, 0, s.CorrectCount())
	for _, item := range s.Items() {
		assert.Equal(t, StateUnanswered, item.State)
	}
}

func TestFreeTextNormalization(t *testing.T) {
	s := NewSession("sess-2", Config{
		ExerciseSlug: "fill-blank-drill",
		Items: []Item{
			{Key: "b1", Accepted: []string{"doesn't work"}},
			{Key: "b2", Accepted: []string{"Went", "did go"}},
		},
		Bands: []Band{{MinPct: 0, Label: "keep_practicing"}},
	})

	v, err := s.Answer("b1", "  Doesn't   WORK ")
	require.NoError(t, err)
	assert.True(t, v.Correct)

	v, err = s.Answer("b2", "went")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, 2, s.CorrectCount())
}

func TestOptionKeyMatchIsVerbatim(t *testing.T) {
	s := NewSession("sess-3", Config{
		ExerciseSlug: "mcq",
		Items: []Item{
			{Key: "q1", Accepted: []string{"opt_b"}, KeyMatch: true},
		},
		Bands: []Band{{MinPct: 0, Label: "keep_practicing"}},
	})

	// Option keys are stable identifiers; no case folding applies.
	v, err := s.Answer("q1", "OPT_B")
	require.NoError(t, err)
	assert.False(t, v.Correct)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	s := fiveQuestionQuiz()
	r.Add(s)

	got, err := r.Get("sess-1")
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, r.Len())

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownSession)

	r.Remove("sess-1")
	assert.Equal(t, 0, r.Len())
	_, err = r.Get("sess-1")
	assert.ErrorIs(t, err, ErrUnknownSession)
}
