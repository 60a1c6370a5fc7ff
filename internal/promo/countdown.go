// Package promo owns the storefront's promotional widgets: the sale
// countdown and the hero carousel. Both are ticking tasks with explicit
// start/stop and a pull-based current state, so the HTTP layer never
// touches a timer directly.
package promo

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CountdownState is the displayed breakdown of time remaining until a
// target instant. All fields clamp to zero once the target has passed.
type CountdownState struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

// Display renders the zero-padded dd:hh:mm:ss form used by sale banners.
func (s CountdownState) Display() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", s.Days, s.Hours, s.Minutes, s.Seconds)
}

// RemainingAt decomposes the difference between target and now into
// whole days, hours, minutes and seconds. At or past the target, every
// field is zero and Expired is set; the state never goes negative.
func RemainingAt(target, now time.Time) CountdownState {
	diff := target.Sub(now)
	if diff <= 0 {
		return CountdownState{Expired: true}
	}
	ms := diff.Milliseconds()
	return CountdownState{
		Days:    int(ms / 86400000),
		Hours:   int(ms/3600000) % 24,
		Minutes: int(ms/60000) % 60,
		Seconds: int(ms/1000) % 60,
	}
}

// Countdown recomputes a CountdownState against a fixed target once per
// second while started. At most one timer runs per instance; Start is
// idempotent and Stop releases the timer.
type Countdown struct {
	label  string
	target time.Time

	mu      sync.Mutex
	state   CountdownState
	running bool
	stop    chan struct{}

	now      func() time.Time
	interval time.Duration
}

func NewCountdown(label string, target time.Time) *Countdown {
	c := &Countdown{
		label:    label,
		target:   target,
		now:      time.Now,
		interval: time.Second,
	}
	c.state = RemainingAt(target, c.now())
	return c
}

func (c *Countdown) Label() string { return c.label }

func (c *Countdown) Target() time.Time { return c.target }

// State returns the most recently computed breakdown.
func (c *Countdown) State() CountdownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start arms the per-second recomputation. Calling Start on a running
// countdown does nothing; a second timer is never created.
func (c *Countdown) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	stop := make(chan struct{})
	c.stop = stop
	c.state = RemainingAt(c.target, c.now())
	c.mu.Unlock()

	go c.run(ctx, stop)
}

// Stop cancels the timer. Required when the owning view goes away.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stop)
}

func (c *Countdown) run(ctx context.Context, stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return
		case <-stop:
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

func (c *Countdown) tick() {
	c.mu.Lock()
	c.state = RemainingAt(c.target, c.now())
	c.mu.Unlock()
}
