package promo

import (
	"context"
	"sync"
	"time"
)

// Sale describes the promotional campaign the widgets are built from.
type Sale struct {
	Label  string    `json:"label"`
	EndsAt time.Time `json:"endsAt"`
	Slides []Slide   `json:"slides"`
}

// Service owns the storefront's single sale countdown and hero carousel.
type Service struct {
	countdown *Countdown
	carousel  *Carousel

	mu  sync.Mutex
	ctx context.Context
}

func NewService(sale Sale) (*Service, error) {
	carousel, err := NewCarousel(sale.Slides)
	if err != nil {
		return nil, err
	}
	return &Service{
		countdown: NewCountdown(sale.Label, sale.EndsAt),
		carousel:  carousel,
		ctx:       context.Background(),
	}, nil
}

// Start arms both widgets. They stop when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.countdown.Start(ctx)
	s.carousel.Start(ctx)
}

// ResumeCarousel re-arms auto-advance under the service's lifecycle
// context rather than a per-request one, so the timer outlives the
// request that resumed it.
func (s *Service) ResumeCarousel() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	s.carousel.Resume(ctx)
}

// Stop tears both widgets down.
func (s *Service) Stop() {
	s.countdown.Stop()
	s.carousel.Stop()
}

func (s *Service) Countdown() *Countdown { return s.countdown }

func (s *Service) Carousel() *Carousel { return s.carousel }
