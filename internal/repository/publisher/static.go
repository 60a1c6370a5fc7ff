package publisher

import (
	"context"

	"zafago-storefront/internal/domain"
)

type staticRepo struct {
	publishers []domain.Publisher
	byID       map[string]int
}

func NewStatic(publishers []domain.Publisher) *staticRepo {
	byID := make(map[string]int, len(publishers))
	for i, p := range publishers {
		byID[p.ID] = i
	}
	return &staticRepo{publishers: publishers, byID: byID}
}

func (r *staticRepo) List(_ context.Context) ([]domain.Publisher, error) {
	out := make([]domain.Publisher, len(r.publishers))
	copy(out, r.publishers)
	return out, nil
}

func (r *staticRepo) GetByID(_ context.Context, id string) (*domain.Publisher, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := r.publishers[i]
	return &p, nil
}
