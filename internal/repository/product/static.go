package product

import (
	"context"

	"zafago-storefront/internal/domain"
)

// staticRepo serves the embedded fixture. Products are copied on List so
// callers can never mutate the catalog.
type staticRepo struct {
	products []domain.Product
	byID     map[string]int
}

func NewStatic(products []domain.Product) *staticRepo {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &staticRepo{products: products, byID: byID}
}

func (r *staticRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *staticRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := r.products[i]
	return &p, nil
}
