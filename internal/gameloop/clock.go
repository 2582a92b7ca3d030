// internal/gameloop/clock.go

package gameloop

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameClock measures the time between frames and counts them atomically.
// When started with an interval it also emits pacing ticks on Ch.
type FrameClock struct {
	Ch    chan struct{}
	count atomic.Int64
	last  time.Time
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewFrameClock creates a clock whose first Turn measures from now.
func NewFrameClock() *FrameClock {
	return newFrameClock(time.Now)
}

func newFrameClock(now func() time.Time) *FrameClock {
	return &FrameClock{
		Ch:   make(chan struct{}, 1),
		last: now(),
		now:  now,
		stop: make(chan struct{}),
	}
}

// Start begins emitting pacing ticks at the given interval.
// A tick is dropped if the previous one has not been consumed yet.
func (c *FrameClock) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case c.Ch <- struct{}{}:
				default:
				}
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop ends the pacing goroutine. It is safe to call more than once.
func (c *FrameClock) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// Turn records a frame and returns the seconds elapsed since the last one.
func (c *FrameClock) Turn() float64 {
	current := c.now()
	delta := current.Sub(c.last)
	c.last = current
	c.count.Add(1)
	return delta.Seconds()
}

// Count returns the number of frames turned so far.
func (c *FrameClock) Count() int64 {
	return c.count.Load()
}
