package cart

import (
	"context"

	"zafago-storefront/internal/domain"
)

// Repository persists a cart as one serialized list per cart id. Every
// mutation rewrites the whole list; there is no delta persistence.
// Load returns an empty list and nil error when no cart is stored, and
// domain.ErrCartCorrupt when the stored payload cannot be decoded.
type Repository interface {
	Load(ctx context.Context, cartID string) ([]domain.CartLine, error)
	Save(ctx context.Context, cartID string, lines []domain.CartLine) error
	Clear(ctx context.Context, cartID string) error

	// Publish broadcasts a change signal for the cart so views outside
	// this process (header badges on other instances) can refresh.
	Publish(ctx context.Context, cartID string) error

	// Updates returns a channel of cart ids whose stored list changed.
	// The returned stop function releases the subscription.
	Updates(ctx context.Context) (<-chan string, func(), error)
}
