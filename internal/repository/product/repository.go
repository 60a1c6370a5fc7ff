package product

import (
	"context"

	"zafago-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Writer is the persistence side used by the seeder and importer.
type Writer interface {
	Upsert(ctx context.Context, product domain.Product) error
}
