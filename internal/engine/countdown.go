package engine

import (
	"sync"
	"time"
)

// Countdown is a one-second-tick timer for timed drills. Start while
// already running is a no-op, so a repeated "start" click can never
// schedule a second ticker. Stop is safe in any state.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	limit     int
	running   bool
	stop      chan struct{}
}

func NewCountdown(seconds int) *Countdown {
	return &Countdown{remaining: seconds, limit: seconds}
}

// Start begins ticking once per second, invoking onExpire when the
// countdown reaches zero. Returns false if the countdown was already
// running or already expired.
func (c *Countdown) Start(onExpire func()) bool {
	c.mu.Lock()
	if c.running || c.remaining <= 0 {
		c.mu.Unlock()
		return false
	}
	c.running = true
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(stop, onExpire)
	return true
}

func (c *Countdown) run(stop chan struct{}, onExpire func()) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.remaining--
			expired := c.remaining <= 0
			if expired {
				c.remaining = 0
				c.running = false
			}
			c.mu.Unlock()

			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// Stop cancels the ticker and restores the full time limit.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		close(c.stop)
		c.running = false
	}
	c.remaining = c.limit
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
