package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/lingodrills/exercise-service/internal/engine"
	"github.com/lingodrills/exercise-service/internal/events"
	"github.com/lingodrills/exercise-service/internal/models"
	"github.com/lingodrills/exercise-service/internal/repositories"
	"github.com/lingodrills/exercise-service/internal/utils"
)

// MockExerciseRepository is a mock implementation of ExerciseRepository
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	args := m.Called(ctx, exercise)
	return args.Error(0)
}

func (m *MockExerciseRepository) GetByID(ctx context.Context, id uint) (*models.Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) GetBySlug(ctx context.Context, slug string) (*models.Exercise, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) List(ctx context.Context, filters repositories.ExerciseFilters) ([]*models.Exercise, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Exercise), args.Get(1).(int64), args.Error(2)
}

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) UpsertProgress(ctx context.Context, record *models.ProgressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockProgressRepository) GetProgress(ctx context.Context, learnerID, exerciseSlug string) (*models.ProgressRecord, error) {
	args := m.Called(ctx, learnerID, exerciseSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) ListProgress(ctx context.Context, learnerID string) ([]*models.ProgressRecord, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) SaveRecommendation(ctx context.Context, rec *models.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockProgressRepository) LatestRecommendation(ctx context.Context, learnerID string) (*models.Recommendation, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}

// MockRepository aggregates the repository mocks
type MockRepository struct {
	exercise *MockExerciseRepository
	progress *MockProgressRepository
}

func (m *MockRepository) Exercise() repositories.ExerciseRepository { return m.exercise }
func (m *MockRepository) Progress() repositories.ProgressRepository { return m.progress }

func newTestService(t *testing.T) (ExerciseService, *MockRepository, *events.MockEventPublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := &MockRepository{
		exercise: &MockExerciseRepository{},
		progress: &MockProgressRepository{},
	}
	publisher := events.NewMockEventPublisher(logger)
	svc := NewExerciseService(repo, engine.NewRegistry(), publisher, logger, utils.NewValidator())
	return svc, repo, publisher
}

func twoItemQuiz() *models.Exercise {
	return &models.Exercise{
		ID:    1,
		Slug:  "articles-quiz",
		Title: "Articles: a, an, the",
		Kind:  models.KindQuiz,
		Items: []models.ExerciseItem{
			{
				Key:      "q1",
				Position: 1,
				Type:     models.ItemMultipleChoice,
				Prompt:   "___ apple a day keeps the doctor away.",
				Options:  datatypes.JSON(`[{"key":"opt_a","label":"A"},{"key":"opt_b","label":"An"}]`),
				Accepted: datatypes.JSON(`["opt_b"]`),
				Hint:     "The next word starts with a vowel sound.",
			},
			{
				Key:      "q2",
				Position: 2,
				Type:     models.ItemFillBlank,
				Prompt:   "She ___ to work every day. (go)",
				Accepted: datatypes.JSON(`["goes"]`),
			},
		},
	}
}

func TestStartSession(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.exercise.On("GetBySlug", ctx, "articles-quiz").Return(twoItemQuiz(), nil)

	resp, err := svc.StartSession(ctx, &StartSessionRequest{
		ExerciseSlug: "articles-quiz",
		LearnerID:    "learner-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "articles-quiz", resp.ExerciseSlug)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, 0, resp.CorrectCount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "unanswered", resp.Items[0].State)
	assert.Len(t, resp.Items[0].Options, 2)
}

func TestStartSessionValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.StartSession(context.Background(), &StartSessionRequest{ExerciseSlug: "articles-quiz"})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestStartSessionExerciseMissing(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.exercise.On("GetBySlug", ctx, "no-such-quiz").Return(nil, repositories.ErrRecordNotFound)

	_, err := svc.StartSession(ctx, &StartSessionRequest{
		ExerciseSlug: "no-such-quiz",
		LearnerID:    "learner-1",
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestSubmitAnswerFlow(t *testing.T) {
	svc, repo, publisher := newTestService(t)
	ctx := context.Background()

	repo.exercise.On("GetBySlug", ctx, "articles-quiz").Return(twoItemQuiz(), nil)
	repo.progress.On("UpsertProgress", ctx, mock.AnythingOfType("*models.ProgressRecord")).Return(nil)

	started, err := svc.StartSession(ctx, &StartSessionRequest{
		ExerciseSlug: "articles-quiz",
		LearnerID:    "learner-1",
	})
	require.NoError(t, err)
	sessionID := started.SessionID

	// Wrong answer on q1: counter stays, item locks.
	resp, err := svc.SubmitAnswer(ctx, sessionID, &SubmitAnswerRequest{ItemKey: "q1", Answer: "opt_a"})
	require.NoError(t, err)
	assert.True(t, resp.Evaluated)
	assert.False(t, resp.Correct)
	assert.Equal(t, 0, resp.CorrectCount)
	assert.Contains(t, resp.Feedback, "vowel sound")

	// Repeat click on q1 is a no-op.
	resp, err = svc.SubmitAnswer(ctx, sessionID, &SubmitAnswerRequest{ItemKey: "q1", Answer: "opt_b"})
	require.NoError(t, err)
	assert.False(t, resp.Evaluated)
	assert.Equal(t, 0, resp.CorrectCount)
	assert.Empty(t, publisher.GetPublishedEvents())

	// Correct free-text answer on q2, case and spacing ignored.
	resp, err = svc.SubmitAnswer(ctx, sessionID, &SubmitAnswerRequest{ItemKey: "q2", Answer: " GOES "})
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Equal(t, 1, resp.CorrectCount)
	assert.True(t, resp.Complete)

	// Completion persisted and published exactly once.
	repo.progress.AssertNumberOfCalls(t, "UpsertProgress", 1)
	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	event := published[0]
	assert.Equal(t, events.EventDrillCompleted, event.Type)
	assert.Equal(t, "learner-1", event.LearnerID)
	assert.Equal(t, "articles-quiz", event.ExerciseSlug)
	assert.Equal(t, 1, event.Correct)
	assert.Equal(t, 2, event.Total)
	assert.Equal(t, 50, event.Pct)

	// Score summary and band.
	score, err := svc.GetScore(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "1/2 (50%)", score.Summary)
	assert.Equal(t, "keep_practicing", score.BandLabel)
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SubmitAnswer(context.Background(), "missing", &SubmitAnswerRequest{ItemKey: "q1", Answer: "a"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResetSession(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.exercise.On("GetBySlug", ctx, "articles-quiz").Return(twoItemQuiz(), nil)
	repo.progress.On("UpsertProgress", ctx, mock.AnythingOfType("*models.ProgressRecord")).Return(nil)

	started, err := svc.StartSession(ctx, &StartSessionRequest{
		ExerciseSlug: "articles-quiz",
		LearnerID:    "learner-1",
	})
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, started.SessionID, &SubmitAnswerRequest{ItemKey: "q1", Answer: "opt_b"})
	require.NoError(t, err)

	resp, err := svc.ResetSession(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CorrectCount)
	for _, item := range resp.Items {
		assert.Equal(t, "unanswered", item.State)
		assert.Empty(t, item.Feedback)
	}

	// Reset twice is safe.
	_, err = svc.ResetSession(ctx, started.SessionID)
	require.NoError(t, err)
}
