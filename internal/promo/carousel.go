package promo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"zafago-storefront/internal/metrics"
)

// Slide is one hero banner in the rotating carousel.
type Slide struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ImageURL  string `json:"imageUrl,omitempty"`
	ProductID string `json:"productId,omitempty"`
}

// Carousel advances through a fixed, non-empty slide list every five
// seconds while auto-play runs. Hover suspends auto-play, leave resumes
// it; manual navigation works in either state. Exactly one timer exists
// per instance at any time.
type Carousel struct {
	slides []Slide

	mu      sync.Mutex
	index   int
	running bool
	stop    chan struct{}

	interval time.Duration
}

func NewCarousel(slides []Slide) (*Carousel, error) {
	if len(slides) == 0 {
		return nil, errors.New("carousel requires at least one slide")
	}
	return &Carousel{slides: slides, interval: 5 * time.Second}, nil
}

// Current returns the displayed index and slide.
func (c *Carousel) Current() (int, Slide) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index, c.slides[c.index]
}

// Len returns the slide count.
func (c *Carousel) Len() int { return len(c.slides) }

// Next advances one slide, wrapping past the end.
func (c *Carousel) Next() {
	c.mu.Lock()
	c.index = (c.index + 1) % len(c.slides)
	c.mu.Unlock()
	metrics.CarouselAdvances.Inc()
}

// Previous steps back one slide, wrapping from 0 to the last slide.
func (c *Carousel) Previous() {
	c.mu.Lock()
	c.index = (c.index - 1 + len(c.slides)) % len(c.slides)
	c.mu.Unlock()
	metrics.CarouselAdvances.Inc()
}

// GoTo jumps to the given slide. Out-of-range indices are rejected
// rather than clamped.
func (c *Carousel) GoTo(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.slides) {
		return fmt.Errorf("slide index %d out of range [0,%d)", i, len(c.slides))
	}
	c.index = i
	return nil
}

// Start begins auto-advance. Idempotent: a running carousel keeps its
// existing timer.
func (c *Carousel) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(ctx, stop)
}

// Suspend cancels the auto-advance timer, e.g. while the pointer hovers
// the carousel. Manual navigation stays available.
func (c *Carousel) Suspend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stop)
}

// Resume arms a fresh timer after a Suspend. Never stacks a second one.
func (c *Carousel) Resume(ctx context.Context) { c.Start(ctx) }

// Stop tears the carousel down.
func (c *Carousel) Stop() { c.Suspend() }

// AutoPlaying reports whether an auto-advance timer is armed.
func (c *Carousel) AutoPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Carousel) run(ctx context.Context, stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Suspend()
			return
		case <-stop:
			return
		case <-ticker.C:
			c.Next()
		}
	}
}
