package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"zafago-storefront/internal/domain"
	"zafago-storefront/internal/metrics"
	cartrepo "zafago-storefront/internal/repository/cart"
)

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Service is the cart accumulator. Every mutation is a full
// read-modify-write of the persisted line list; a cart that cannot be
// read is treated as empty and the mutation still goes through, with
// the recovery surfaced to the caller as a non-blocking notice.
type Service struct {
	repo     cartrepo.Repository
	products productRepo
	notifier *Notifier
	logger   *log.Logger
	now      func() time.Time
}

func New(repo cartrepo.Repository, products productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:     repo,
		products: products,
		notifier: NewNotifier(),
		logger:   logger,
		now:      time.Now,
	}
}

// Notifier exposes the same-process change signal for header badges and
// the websocket handler.
func (s *Service) Notifier() *Notifier {
	return s.notifier
}

// Get returns the cart, falling back to an empty one when storage is
// unreadable.
func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, errors.New("cart id required")
	}
	lines, recovered := s.loadBaseline(ctx, cartID)
	return s.buildCart(cartID, lines, recovered), nil
}

// Add merges one product into the cart: an already-present product id
// gets its quantity incremented, a new one is appended with a snapshot
// of the product taken now. Insertion order is preserved.
func (s *Service) Add(ctx context.Context, cartID, productID string, qty int) (*domain.Cart, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, errors.New("cart id required")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("product id required")
	}
	if qty <= 0 {
		qty = 1
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	lines, recovered := s.loadBaseline(ctx, cartID)
	merged := false
	for i := range lines {
		if lines[i].Product.ID == product.ID {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{
			Product:  *product,
			Quantity: qty,
			AddedAt:  s.now(),
		})
	}

	if err := s.repo.Save(ctx, cartID, lines); err != nil {
		return nil, err
	}
	metrics.CartAdds.Inc()

	cart := s.buildCart(cartID, lines, recovered)
	s.broadcast(ctx, cart)
	return cart, nil
}

// Remove drops the line for the given product id.
func (s *Service) Remove(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	lines, recovered := s.loadBaseline(ctx, cartID)
	kept := lines[:0]
	found := false
	for _, line := range lines {
		if line.Product.ID == productID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.Save(ctx, cartID, kept); err != nil {
		return nil, err
	}

	cart := s.buildCart(cartID, kept, recovered)
	s.broadcast(ctx, cart)
	return cart, nil
}

// Clear empties the cart entirely.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	if err := s.repo.Clear(ctx, cartID); err != nil {
		return err
	}
	s.broadcast(ctx, &domain.Cart{ID: cartID})
	return nil
}

// loadBaseline reads the persisted list, substituting an empty baseline
// when storage is absent, unreachable, or malformed. The second return
// reports whether a recovery happened.
func (s *Service) loadBaseline(ctx context.Context, cartID string) ([]domain.CartLine, bool) {
	lines, err := s.repo.Load(ctx, cartID)
	if err == nil {
		return lines, false
	}
	if errors.Is(err, domain.ErrCartCorrupt) {
		s.logger.Printf("cart service: id=%s malformed cart, starting empty", cartID)
	} else {
		s.logger.Printf("cart service: id=%s storage unavailable, starting empty: %v", cartID, err)
	}
	metrics.CartRecoveries.Inc()
	return nil, true
}

func (s *Service) buildCart(cartID string, lines []domain.CartLine, recovered bool) *domain.Cart {
	cart := &domain.Cart{
		ID:        cartID,
		Lines:     lines,
		UpdatedAt: s.now(),
		Recovered: recovered,
	}
	cart.Totals()
	return cart
}

// WatchStorage forwards change signals published by other instances into
// this instance's notifier, so a badge here refreshes when the same cart
// is written elsewhere. Blocks until ctx is done.
func (s *Service) WatchStorage(ctx context.Context) error {
	updates, stop, err := s.repo.Updates(ctx)
	if err != nil {
		return err
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cartID, ok := <-updates:
			if !ok {
				return nil
			}
			lines, err := s.repo.Load(ctx, cartID)
			if err != nil {
				s.logger.Printf("cart service: id=%s reload on change signal: %v", cartID, err)
				continue
			}
			cart := s.buildCart(cartID, lines, false)
			s.notifier.notify(Event{CartID: cart.ID, TotalQuantity: cart.TotalQuantity})
		}
	}
}

func (s *Service) broadcast(ctx context.Context, cart *domain.Cart) {
	s.notifier.notify(Event{CartID: cart.ID, TotalQuantity: cart.TotalQuantity})
	if err := s.repo.Publish(ctx, cart.ID); err != nil {
		s.logger.Printf("cart service: id=%s publish change signal: %v", cart.ID, err)
	}
}
