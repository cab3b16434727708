package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lingodrills/exercise-service/internal/cache"
	"github.com/lingodrills/exercise-service/internal/speech"
	"github.com/lingodrills/exercise-service/internal/utils"
)

const defaultAccent = "en-US"

type SpeakResponse struct {
	Utterance *speech.Utterance `json:"utterance,omitempty"`
	Audio     speech.Audio      `json:"-"`
	// Available is false when the capability is missing; Notice carries
	// the one-time user-visible message, empty on later calls.
	Available bool   `json:"available"`
	Notice    string `json:"notice,omitempty"`
}

type SpeechStatusResponse struct {
	Speaking bool              `json:"speaking"`
	Paused   bool              `json:"paused"`
	Current  *speech.Utterance `json:"current,omitempty"`
}

type SpeechService interface {
	Speak(ctx context.Context, learnerID string, req speech.Request) (*SpeakResponse, error)
	Pause()
	Resume()
	Stop()
	Status() *SpeechStatusResponse
	Voices(ctx context.Context) ([]speech.Voice, error)
}

type speechService struct {
	controller  *speech.Controller
	preferences cache.PreferenceStore
	logger      *slog.Logger
	validator   *utils.Validator
}

func NewSpeechService(
	controller *speech.Controller,
	preferences cache.PreferenceStore,
	logger *slog.Logger,
	validator *utils.Validator,
) SpeechService {
	return &speechService{
		controller:  controller,
		preferences: preferences,
		logger:      logger,
		validator:   validator,
	}
}

// Speak plays one utterance, cancelling any prior one. A missing
// capability is not an error: the response degrades to a no-op carrying
// the one-time notice.
func (s *speechService) Speak(ctx context.Context, learnerID string, req speech.Request) (*SpeakResponse, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	if req.Language == "" {
		req.Language = s.preferences.Get(ctx, learnerID, cache.PrefAccent, defaultAccent)
	}

	utterance, audio, err := s.controller.Speak(ctx, req)
	if err != nil {
		if errors.Is(err, speech.ErrUnavailable) {
			return &SpeakResponse{
				Available: false,
				Notice:    s.controller.ConsumeNotice(),
			}, nil
		}
		return nil, fmt.Errorf("speech playback failed: %w", err)
	}

	return &SpeakResponse{Utterance: utterance, Audio: audio, Available: true}, nil
}

func (s *speechService) Pause()  { s.controller.Pause() }
func (s *speechService) Resume() { s.controller.Resume() }
func (s *speechService) Stop()   { s.controller.Cancel() }

func (s *speechService) Status() *SpeechStatusResponse {
	speaking, paused, current := s.controller.Status()
	return &SpeechStatusResponse{Speaking: speaking, Paused: paused, Current: current}
}

func (s *speechService) Voices(ctx context.Context) ([]speech.Voice, error) {
	return s.controller.Voices(ctx)
}
