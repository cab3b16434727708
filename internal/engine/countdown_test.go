package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountdownStartGuard(t *testing.T) {
	c := NewCountdown(60)

	assert.True(t, c.Start(nil))
	// A second start while running must not schedule a second ticker.
	assert.False(t, c.Start(nil))
	assert.True(t, c.Running())

	c.Stop()
	assert.False(t, c.Running())
	assert.Equal(t, 60, c.Remaining())
}

func TestCountdownStopIdempotent(t *testing.T) {
	c := NewCountdown(30)
	c.Stop()
	c.Stop()
	assert.False(t, c.Running())
	assert.Equal(t, 30, c.Remaining())
}

func TestCountdownZeroDoesNotStart(t *testing.T) {
	c := NewCountdown(0)
	assert.False(t, c.Start(nil))
	assert.False(t, c.Running())
}
