// Package pollingtest provides a manual clock for driving pollers in tests
package pollingtest

import (
	"sort"
	"sync"
	"time"

	"imgstudio/internal/core/service/polling"
)

// ManualClock fires timers only when advanced
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	delay   time.Duration
	f       func()
	done    bool
	stopped bool
}

// NewManualClock creates a clock stopped at zero
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) polling.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, delay: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.done && !t.stopped
	t.stopped = true
	return active
}

// Advance moves time forward, running due timers in order
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.done = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

// Pending returns the delays of timers that have not fired or been stopped
func (c *ManualClock) Pending() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var delays []time.Duration
	for _, t := range c.timers {
		if !t.done && !t.stopped {
			delays = append(delays, t.delay)
		}
	}
	return delays
}

func (c *ManualClock) nextDueLocked(target time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.done && !t.stopped && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	return due[0]
}
