package speech

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynthesizer struct {
	mu     sync.Mutex
	calls  []Request
	voices []Voice
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, req Request) (Audio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return Audio{Data: []byte("mp3:" + req.Text), MIME: "audio/mpeg"}, nil
}

func (f *fakeSynthesizer) Voices(_ context.Context) ([]Voice, error) {
	return f.voices, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestSpeakExclusivity(t *testing.T) {
	synth := &fakeSynthesizer{}
	c := NewController(synth, testLogger())
	ctx := context.Background()

	first, _, err := c.Speak(ctx, Request{Text: "Hello", Language: "en-GB"})
	require.NoError(t, err)

	second, _, err := c.Speak(ctx, Request{Text: "Goodbye", Language: "en-GB"})
	require.NoError(t, err)

	// Exactly one active utterance afterwards, and it is the new one.
	speaking, _, current := c.Status()
	assert.True(t, speaking)
	require.NotNil(t, current)
	assert.Equal(t, second.ID, current.ID)
	assert.NotEqual(t, first.ID, current.ID)
	assert.Equal(t, "Goodbye", current.Text)
}

func TestPauseResumeCancel(t *testing.T) {
	c := NewController(&fakeSynthesizer{}, testLogger())
	ctx := context.Background()

	// All controls are no-ops before anything speaks.
	c.Pause()
	c.Resume()
	c.Cancel()
	speaking, paused, _ := c.Status()
	assert.False(t, speaking)
	assert.False(t, paused)

	_, _, err := c.Speak(ctx, Request{Text: "Hello"})
	require.NoError(t, err)

	c.Pause()
	speaking, paused, _ = c.Status()
	assert.True(t, speaking)
	assert.True(t, paused)

	c.Resume()
	_, paused, _ = c.Status()
	assert.False(t, paused)

	c.Cancel()
	speaking, _, current := c.Status()
	assert.False(t, speaking)
	assert.Nil(t, current)
}

func TestUnavailableDegradesWithOneNotice(t *testing.T) {
	c := NewController(nil, testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := c.Speak(ctx, Request{Text: "Hello"})
		assert.ErrorIs(t, err, ErrUnavailable)
	}

	assert.Equal(t, UnavailableNotice, c.ConsumeNotice())
	// The notice is user-visible exactly once.
	assert.Empty(t, c.ConsumeNotice())

	voices, err := c.Voices(ctx)
	assert.NoError(t, err)
	assert.Empty(t, voices)
}

func TestSpeakSelectsVoiceForLanguage(t *testing.T) {
	synth := &fakeSynthesizer{voices: []Voice{
		{Name: "en-US-Standard-A", Language: "en-US"},
		{Name: "en-GB-Standard-B", Language: "en-GB"},
	}}
	c := NewController(synth, testLogger())

	_, _, err := c.Speak(context.Background(), Request{Text: "Hello", Language: "en-GB"})
	require.NoError(t, err)

	require.Len(t, synth.calls, 1)
	assert.Equal(t, "en-GB-Standard-B", synth.calls[0].Voice)
}

func TestSelectVoiceFallbackChain(t *testing.T) {
	voices := []Voice{
		{Name: "fr", Language: "fr-FR"},
		{Name: "us", Language: "en-US"},
		{Name: "gb-dialect", Language: "en-GB-oxendict"},
		{Name: "gb", Language: "en-GB"},
	}

	tests := []struct {
		tag  string
		want string
	}{
		{"en-GB", "gb"},                  // exact match
		{"en_gb", "gb"},                  // exact after tag normalization
		{"en-GB-scotland", "gb-dialect"}, // same base and region, extra subtags tolerated
		{"en-AU", "us"},                  // any same base language
		{"de-DE", "fr"},                  // no match: first available
		{"", "fr"},                       // no tag: first available
	}
	for _, tt := range tests {
		v, ok := SelectVoice(voices, tt.tag)
		assert.True(t, ok, "tag %q", tt.tag)
		assert.Equal(t, tt.want, v.Name, "tag %q", tt.tag)
	}

	_, ok := SelectVoice(nil, "en-GB")
	assert.False(t, ok)
}
