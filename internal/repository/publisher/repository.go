package publisher

import (
	"context"

	"zafago-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Publisher, error)
	GetByID(ctx context.Context, id string) (*domain.Publisher, error)
}

type Writer interface {
	Upsert(ctx context.Context, publisher domain.Publisher) error
}
