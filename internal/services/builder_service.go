package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lingodrills/exercise-service/internal/builder"
	"github.com/lingodrills/exercise-service/internal/utils"
)

type BuildRequest struct {
	Builder string            `json:"builder" validate:"required"`
	Fields  map[string]string `json:"fields"`
}

type BuildResponse struct {
	Builder    string                   `json:"builder"`
	Paragraphs map[builder.Level]string `json:"paragraphs"`
}

type BuilderService interface {
	Builders() []string
	Build(ctx context.Context, req *BuildRequest) (*BuildResponse, error)
}

type builderService struct {
	builders  map[string]*builder.Builder
	logger    *slog.Logger
	validator *utils.Validator
}

// NewBuilderService registers every paragraph/dialogue generator the
// learning pages offer.
func NewBuilderService(logger *slog.Logger, validator *utils.Validator) BuilderService {
	registered := []*builder.Builder{
		builder.NewSelfIntroduction(),
		builder.NewCoffeeShopDialogue(),
	}

	builders := make(map[string]*builder.Builder, len(registered))
	for _, b := range registered {
		builders[b.Name()] = b
	}
	return &builderService{
		builders:  builders,
		logger:    logger,
		validator: validator,
	}
}

func (s *builderService) Builders() []string {
	names := make([]string, 0, len(s.builders))
	for name := range s.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *builderService) Build(ctx context.Context, req *BuildRequest) (*BuildResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	b, ok := s.builders[req.Builder]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBuilderNotFound, req.Builder)
	}

	paragraphs := b.Build(req.Fields)
	s.logger.Debug("Paragraphs generated",
		"builder", req.Builder,
		"fields", len(req.Fields))

	return &BuildResponse{Builder: req.Builder, Paragraphs: paragraphs}, nil
}
