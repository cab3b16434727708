// Package speech wraps the platform text-to-speech capability. The
// capability is external and best-effort: it may be missing, its voice
// list may be empty or change between calls, and nothing here ever
// treats that as a hard failure.
package speech

import (
	"context"
	"errors"
)

// ErrUnavailable is returned once the capability has been found missing.
// Callers surface a notice the first time and stay silent after that.
var ErrUnavailable = errors.New("speech synthesis unavailable")

// Request is one transient speak request. At most one is live at a time:
// starting a new one cancels the previous.
type Request struct {
	Text     string  `json:"text" validate:"required,max=2000"`
	Language string  `json:"language"` // BCP-47 tag, e.g. "en-GB"
	Rate     float64 `json:"rate" validate:"omitempty,min=0.25,max=4"`
	Pitch    float64 `json:"pitch" validate:"omitempty,min=-20,max=20"`
	Voice    string  `json:"voice"`
}

// Voice is one synthesizer voice.
type Voice struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

// Audio is a synthesized utterance ready for playback.
type Audio struct {
	Data []byte
	MIME string
}

// Synthesizer is the host speech capability, consumed not owned.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (Audio, error)
	Voices(ctx context.Context) ([]Voice, error)
}
