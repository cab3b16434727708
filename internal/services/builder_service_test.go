package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingodrills/exercise-service/internal/builder"
	"github.com/lingodrills/exercise-service/internal/utils"
)

func newBuilderService() BuilderService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewBuilderService(logger, utils.NewValidator())
}

func TestBuilderServiceRegistry(t *testing.T) {
	svc := newBuilderService()
	assert.Equal(t, []string{"coffee-shop-dialogue", "self-introduction"}, svc.Builders())
}

func TestBuilderServiceBuild(t *testing.T) {
	svc := newBuilderService()

	resp, err := svc.Build(context.Background(), &BuildRequest{
		Builder: "self-introduction",
		Fields:  map[string]string{"name": "Maria", "hometown": "Osaka"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Paragraphs, 3)
	assert.Contains(t, resp.Paragraphs[builder.LevelBasic], "My name is Maria.")
	assert.Contains(t, resp.Paragraphs[builder.LevelBasic], "I am from Osaka.")
}

func TestBuilderServiceUnknownBuilder(t *testing.T) {
	svc := newBuilderService()

	_, err := svc.Build(context.Background(), &BuildRequest{Builder: "sonnet-generator"})
	assert.ErrorIs(t, err, ErrBuilderNotFound)
}

func TestBuilderServiceValidation(t *testing.T) {
	svc := newBuilderService()

	_, err := svc.Build(context.Background(), &BuildRequest{})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
