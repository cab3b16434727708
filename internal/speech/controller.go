package speech

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UnavailableNotice is the one-time message shown when the speech
// capability is missing.
const UnavailableNotice = "Speech playback is not available right now. You can keep practicing without audio."

// Utterance is the playback state of the single live speak request.
type Utterance struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Language  string    `json:"language"`
	Voice     string    `json:"voice"`
	Paused    bool      `json:"paused"`
	StartedAt time.Time `json:"started_at"`
}

// Controller sequences access to the one shared speech channel. Starting
// a new utterance always cancels the previous one, so at most one is
// active system-wide. A missing synthesizer degrades to a no-op with a
// single user-visible notice.
type Controller struct {
	mu      sync.Mutex
	synth   Synthesizer
	logger  *slog.Logger
	current *Utterance
	noticed bool
	warned  bool
}

func NewController(synth Synthesizer, logger *slog.Logger) *Controller {
	return &Controller{synth: synth, logger: logger}
}

// Speak cancels any in-flight utterance, resolves a voice for the
// requested language and synthesizes the text. The returned Utterance is
// the new single live request.
func (c *Controller) Speak(ctx context.Context, req Request) (*Utterance, Audio, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.synth == nil {
		return nil, Audio{}, c.unavailableLocked()
	}

	// Cancel before speak: the previous utterance is dropped, not queued.
	c.current = nil

	if req.Voice == "" {
		// Best effort only. An empty or failing voice list never blocks
		// the request; the synthesizer then uses its own default.
		if voices, err := c.synth.Voices(ctx); err == nil {
			if v, ok := SelectVoice(voices, req.Language); ok {
				req.Voice = v.Name
			}
		}
	}

	audio, err := c.synth.Synthesize(ctx, req)
	if err != nil {
		return nil, Audio{}, fmt.Errorf("synthesize: %w", err)
	}

	c.current = &Utterance{
		ID:        uuid.NewString(),
		Text:      req.Text,
		Language:  req.Language,
		Voice:     req.Voice,
		StartedAt: time.Now(),
	}
	c.logger.Debug("utterance started",
		"utterance_id", c.current.ID,
		"language", req.Language,
		"voice", req.Voice)

	return c.snapshotLocked(), audio, nil
}

// Pause marks the live utterance paused. With nothing speaking it is a
// silent no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Paused = true
	}
}

// Resume clears the paused flag. With nothing paused it is a no-op.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Paused = false
	}
}

// Cancel drops the live utterance, if any.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Status reports the speaking/paused flags and the live utterance.
func (c *Controller) Status() (speaking, paused bool, current *Utterance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return false, false, nil
	}
	return true, c.current.Paused, c.snapshotLocked()
}

// Voices lists the synthesizer's voices; an empty list when the
// capability is missing.
func (c *Controller) Voices(ctx context.Context) ([]Voice, error) {
	c.mu.Lock()
	synth := c.synth
	c.mu.Unlock()

	if synth == nil {
		return nil, nil
	}
	return synth.Voices(ctx)
}

// ConsumeNotice returns the degradation notice exactly once; empty
// afterwards. Callers show it the first time and stay quiet after.
func (c *Controller) ConsumeNotice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.synth != nil || c.noticed {
		return ""
	}
	c.noticed = true
	return UnavailableNotice
}

func (c *Controller) unavailableLocked() error {
	if !c.warned {
		c.warned = true
		c.logger.Warn("speech capability unavailable, degrading to no-op")
	}
	return ErrUnavailable
}

func (c *Controller) snapshotLocked() *Utterance {
	cp := *c.current
	return &cp
}
